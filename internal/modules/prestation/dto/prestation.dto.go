package dto

import "time"

// États techniques réellement présents dans prestation_prestation
var AllowedStates = map[string]bool{
	"closed":   true,
	"done":     true,
	"open":     true,
	"draft":    true,
	"rejected": true,
}

// Ref est une référence id/nom vers une table liée
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DocumentRef est la vue réduite d'un document rattaché
type DocumentRef struct {
	ID            int       `json:"id"`
	Type          string    `json:"type"`
	CheminFichier string    `json:"cheminFichier"`
	Actif         bool      `json:"actif"`
	Date          time.Time `json:"date"`
}

// Prestation est la vue normalisée retournée par les listes et le détail
type Prestation struct {
	ID              int           `json:"id"`
	Prestation      string        `json:"prestation,omitempty"`
	Description     string        `json:"description,omitempty"`
	DepartmentName  string        `json:"department_name,omitempty"`
	PartnerName     string        `json:"partner_name,omitempty"`
	IAT             string        `json:"iat,omitempty"`
	ResponsibleName string        `json:"responsible_name,omitempty"`
	ChefProjet      string        `json:"chef_projet,omitempty"`
	Intervenants    string        `json:"intervenants,omitempty"`
	Date            *time.Time    `json:"date"`
	DateStartPrevue *time.Time    `json:"date_start_prevue"`
	ActivityName    string        `json:"activity_name,omitempty"`
	Commercial      string        `json:"commercial,omitempty"`
	State           string        `json:"state"`
	Documents       []DocumentRef `json:"documents"`
	Department      *Ref          `json:"department"`
	Activity        *Ref          `json:"activity"`
}

// CreatePrestationRequest reprend les champs acceptés à la création.
// Les identifiants peuvent arriver en id direct ou en libellé à résoudre.
type CreatePrestationRequest struct {
	ActivityID         *int   `json:"activityId"`
	DepartmentID       *int   `json:"departmentId"`
	ClientID           *int   `json:"clientId"`
	Activite           string `json:"activite"`
	Departement        string `json:"departement"`
	Client             string `json:"client"`
	NomProjet          string `json:"nom_projet"`
	Date               string `json:"date"`
	EnteteTexte        string `json:"entete_texte"`
	ReferenceBordereau string `json:"reference_bordereau"`
	BureauOrder        string `json:"bureau_order"`
	T                  bool   `json:"t"`
	IAT                string `json:"iat"`
	Pays               string `json:"pays"`
	Actif              *bool  `json:"actif"`
	NumPrestation      string `json:"numPrestation"`
	ChefProjet         *int   `json:"chefProjet"`
	Intervenants       string `json:"intervenants"`
	DateCreation       string `json:"dateCreation"`
	AdresseClient      string `json:"adresse_client"`
	AnalyticAccountID  *int   `json:"analyticAccountId"`
}

// UpdatePrestationRequest porte une mise à jour partielle
type UpdatePrestationRequest struct {
	NomProjet          *string `json:"nom_projet"`
	Prestation         *string `json:"prestation"`
	State              *string `json:"state"`
	IAT                *string `json:"iat"`
	Intervenants       *string `json:"intervenants"`
	ReferenceBordereau *string `json:"reference_bordereau"`
	DepartmentID       *int    `json:"departmentId"`
	ActivityID         *int    `json:"activityId"`
	ResponsibleID      *int    `json:"responsibleId"`
	Date               *string `json:"date"`
}

// StateCount est un compteur par état
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// SummaryResponse alimente les compteurs du tableau de bord
type SummaryResponse struct {
	Counts []StateCount `json:"counts"`
	Total  int          `json:"total"`
}

// StateRow est une ligne de la liste paginée par état
type StateRow struct {
	ID                 int        `json:"id"`
	Prestation         string     `json:"prestation"`
	NamePrimary        string     `json:"name_primary"`
	Date               *time.Time `json:"date"`
	IAT                string     `json:"iat"`
	ReferenceBordereau string     `json:"reference_bordereau"`
	DepartmentID       *int       `json:"department_id"`
	ActivityID         *int       `json:"activity_id"`
	DepartmentName     string     `json:"department_name"`
	ActivityName       string     `json:"activity_name"`
}

// ListByStateResponse est la réponse paginée de la liste par état
type ListByStateResponse struct {
	Rows     []StateRow `json:"rows"`
	Count    int        `json:"count"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// PrestationFull est le détail complet avec les libellés joints
type PrestationFull struct {
	ID                 int        `json:"id"`
	Prestation         string     `json:"prestation"`
	NamePrimary        string     `json:"name_primary"`
	State              string     `json:"state"`
	Date               *time.Time `json:"date"`
	IAT                string     `json:"iat"`
	Entete             string     `json:"entete"`
	ReferenceBordereau string     `json:"reference_bordereau"`
	Intervenants       string     `json:"intervenants"`
	DepartmentName     string     `json:"department_name"`
	ActivityName       string     `json:"activity_name"`
	CountryName        string     `json:"country_name"`
	AnalyticName       string     `json:"analytic_name"`
	AnalyticCode       string     `json:"analytic_code"`
	ResponsibleName    string     `json:"responsible_name"`
}

// FullResponse combine le détail complet et ses documents
type FullResponse struct {
	Row       PrestationFull `json:"row"`
	Documents []DocumentRef  `json:"documents"`
}

// Option est une entrée de liste déroulante
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// UserOption est une entrée de sélection d'utilisateur par groupe
type UserOption struct {
	ID          int    `json:"id"`
	Value       int    `json:"value"`
	Label       string `json:"label"`
	Email       string `json:"email,omitempty"`
	PartnerID   int    `json:"partner_id"`
	PartnerName string `json:"partner_name,omitempty"`
	Active      bool   `json:"active"`
}

// PrestError représente les erreurs du domaine prestation
type PrestError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *PrestError) Error() string {
	return e.Message
}

// NewPrestError crée une nouvelle erreur du domaine prestation
func NewPrestError(code, message string, details map[string]interface{}) *PrestError {
	return &PrestError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
