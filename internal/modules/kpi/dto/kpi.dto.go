package dto

// VolumeCounts compte demandes et échantillons
type VolumeCounts struct {
	Demandes     int `json:"demandes"`
	Echantillons int `json:"echantillons"`
}

// SpaceCounts compte appareils et surface occupée
type SpaceCounts struct {
	Appareils      int     `json:"appareils"`
	EspaceOccupeM2 float64 `json:"espaceOccupeM2"`
}

// PlanningItem est une demande à planifier des deux dernières semaines
type PlanningItem struct {
	Client       *string  `json:"client"`
	MarqueModele *string  `json:"marqueModele"`
	Kg           *float64 `json:"kg"`
	TypeEssai    *string  `json:"typeEssai"`
	Date         string   `json:"date"`
}

// DashboardPayload est la charge utile fixe du tableau de bord KPI
type DashboardPayload struct {
	NombreTotal VolumeCounts `json:"nombreTotal"`
	Acheves     VolumeCounts `json:"acheves"`
	EnCours     VolumeCounts `json:"enCours"`

	AttenteConfirmation int `json:"attenteConfirmation"`

	DureeMoyRealisationJ int `json:"dureeMoyRealisationJ"`
	DureeMoyTraitementJ  int `json:"dureeMoyTraitementJ"`

	RespectDelaisPct float64 `json:"respectDelaisPct"`

	Reception      SpaceCounts `json:"reception"`
	StockageRetour SpaceCounts `json:"stockageRetour"`

	TauxDisponibilitePct float64 `json:"tauxDisponibilitePct"`
	TauxOccupationPct    float64 `json:"tauxOccupationPct"`

	NbPannes               int      `json:"nbPannes"`
	MtbfJours              *float64 `json:"mtbfJours"`
	MttrJours              *float64 `json:"mttrJours"`
	ArretProgrammeJours    int      `json:"arretProgrammeJours"`
	ArretNonProgrammeJours int      `json:"arretNonProgrammeJours"`

	AchevesAggregat int `json:"achevesAggregat"`
	EnCoursAggregat int `json:"enCoursAggregat"`

	Planning []PlanningItem `json:"planning"`
}

// ActivityRow est une ligne de la répartition par activité
type ActivityRow struct {
	ActivityID   *int    `json:"activity_id"`
	ActivityName string  `json:"activity_name"`
	Prestations  int     `json:"prestations"`
	NbProducts   int     `json:"nb_products"`
	Done         int     `json:"done"`
	Cancel       int     `json:"cancel"`
	InProgress   int     `json:"in_progress"`
	TotalAmount  float64 `json:"total_amount"`
	PctOfTotal   float64 `json:"pct_of_total"`
}

// ByActivityResponse est la réponse de la répartition par activité
type ByActivityResponse struct {
	Rows   []ActivityRow          `json:"rows"`
	Params map[string]interface{} `json:"params"`
}

// StateAggRow est une ligne de la répartition par état
type StateAggRow struct {
	State string  `json:"state"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// ByStateResponse est la réponse de la répartition par état
type ByStateResponse struct {
	Rows   []StateAggRow          `json:"rows"`
	Total  int                    `json:"total"`
	Params map[string]interface{} `json:"params"`
}
