package dto

// LoginRequest représente la requête de connexion
type LoginRequest struct {
	LoginOrEmail string `json:"loginOrEmail" validate:"required,min=3,max=255"`
	Password     string `json:"password" validate:"required,min=6"`
}

// LoginResponse représente la réponse de connexion réussie
type LoginResponse struct {
	Token string   `json:"token"`
	Role  string   `json:"role"`
	User  UserData `json:"user"`
}

// UserData représente les informations utilisateur retournées au client
type UserData struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	PartnerID int    `json:"partner_id"`
}

// RegisterRequest représente la demande de création de compte
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// RegisterResponse représente la réponse après création de compte
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"userId"`
	Role    string `json:"role"`
}

// UpdateUserRequest champs modifiables d'un compte (tous optionnels)
type UpdateUserRequest struct {
	Active   *bool   `json:"active"`
	Login    *string `json:"login"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UserStatsEntry ligne du listing de statistiques utilisateurs
type UserStatsEntry struct {
	ID     int    `json:"id"`
	Login  string `json:"login"`
	Active bool   `json:"active"`
	Email  string `json:"email"`
}

// UserStatsResponse statistiques des comptes non administrateurs
type UserStatsResponse struct {
	TotalUsers int              `json:"totalUsers"`
	Users      []UserStatsEntry `json:"users"`
}

// ClientEntry ligne du listing des comptes clients
type ClientEntry struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Active    bool   `json:"active"`
	PartnerID int    `json:"partner_id"`
}

// AuthError représente les erreurs du domaine auth
type AuthError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *AuthError) Error() string {
	return e.Message
}

// NewAuthError crée une nouvelle erreur du domaine auth
func NewAuthError(code, message string, details map[string]interface{}) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
