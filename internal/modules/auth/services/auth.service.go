package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/infrastructure/database/redis"
	"cetime-core/internal/modules/auth/dto"
	"cetime-core/internal/modules/auth/queries"
	"cetime-core/internal/shared/utils"

	"github.com/jackc/pgx/v5"
)

// Tentatives de connexion autorisées avant blocage temporaire
const maxLoginAttempts = 5

type AuthService struct {
	db           *postgres.Client
	txManager    *postgres.TransactionManager
	redisClient  *redis.Client
	roleResolver *RoleResolver
	tokenService *TokenService
}

// NewAuthService crée une nouvelle instance du service d'authentification
func NewAuthService(
	db *postgres.Client,
	txManager *postgres.TransactionManager,
	redisClient *redis.Client,
	roleResolver *RoleResolver,
	tokenService *TokenService,
) *AuthService {
	return &AuthService{
		db:           db,
		txManager:    txManager,
		redisClient:  redisClient,
		roleResolver: roleResolver,
		tokenService: tokenService,
	}
}

// Login authentifie un compte par login ou email et émet un jeton
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.TrimSpace(req.LoginOrEmail)

	// 1. Vérifier le rate limiting
	if err := s.checkRateLimit(ctx, identifier); err != nil {
		return nil, err
	}

	// 2. Récupérer le compte actif
	var user dto.UserData
	var passwordHash string

	row := s.db.QueryRow(ctx, queries.UserQueries.GetActiveByLoginOrEmail, identifier)
	err := row.Scan(&user.ID, &user.Login, &passwordHash, &user.Active,
		&user.PartnerID, &user.Name, &user.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.incrementFailedAttempt(ctx, identifier)
			return nil, dto.NewAuthError("USER_NOT_FOUND", "Utilisateur introuvable ou inactif", nil)
		}
		log.Printf("Database error during login for %s: %v", identifier, err)
		return nil, fmt.Errorf("erreur récupération compte: %w", err)
	}

	// 3. Vérifier le mot de passe
	if !utils.VerifyPassword(req.Password, passwordHash) {
		s.incrementFailedAttempt(ctx, identifier)
		return nil, dto.NewAuthError("INVALID_PASSWORD", "Mot de passe incorrect", nil)
	}

	// 4. Résoudre le rôle depuis les groupes
	groupNames, err := s.getGroupNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Role = s.roleResolver.Resolve(groupNames)

	// 5. Émettre le jeton
	token, err := s.tokenService.Generate(user)
	if err != nil {
		return nil, err
	}

	// 6. Réinitialiser le compteur d'échecs
	s.clearRateLimit(ctx, identifier)

	return &dto.LoginResponse{
		Token: token,
		Role:  user.Role,
		User:  user,
	}, nil
}

// Register crée un partner, un compte inactif et ses liaisons de groupes
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// Unicité du login
	var exists bool
	err := s.db.QueryRow(ctx, queries.UserQueries.CheckLoginExists, req.Login, 0).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("erreur vérification login: %w", err)
	}
	if exists {
		return nil, dto.NewAuthError("LOGIN_TAKEN", "Login déjà utilisé", nil)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// Groupes correspondant au rôle demandé
	patterns := aliasPatterns(s.roleResolver.AliasesForRole(req.Role))

	var userID int
	err = s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		var partnerID int
		err := tx.QueryRow(ctx, queries.UserQueries.InsertPartner, req.Name, req.Email).Scan(&partnerID)
		if err != nil {
			return fmt.Errorf("erreur création partner: %w", err)
		}

		err = tx.QueryRow(ctx, queries.UserQueries.InsertUser, req.Login, hashed, partnerID).Scan(&userID)
		if err != nil {
			return fmt.Errorf("erreur création compte: %w", err)
		}

		rows, err := tx.Query(ctx, queries.UserQueries.FindGroupsByPatterns, patterns)
		if err != nil {
			return fmt.Errorf("erreur recherche groupes: %w", err)
		}

		var groupIDs []int
		for rows.Next() {
			var gid int
			var name string
			if err := rows.Scan(&gid, &name); err != nil {
				rows.Close()
				return fmt.Errorf("erreur lecture groupe: %w", err)
			}
			groupIDs = append(groupIDs, gid)
		}
		rows.Close()

		if len(groupIDs) == 0 {
			return dto.NewAuthError("GROUP_NOT_FOUND", "Groupe introuvable pour ce rôle", map[string]interface{}{
				"role": req.Role,
			})
		}

		for _, gid := range groupIDs {
			if err := tx.Exec(ctx, queries.UserQueries.LinkUserGroup, gid, userID); err != nil {
				return fmt.Errorf("erreur liaison groupe: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Message: "Utilisateur enregistré avec succès",
		UserID:  userID,
		Role:    strings.ToLower(req.Role),
	}, nil
}

// GetUserByID retourne un compte et son rôle résolu
func (s *AuthService) GetUserByID(ctx context.Context, id int) (*dto.UserData, error) {
	var user dto.UserData

	row := s.db.QueryRow(ctx, queries.UserQueries.GetByID, id)
	err := row.Scan(&user.ID, &user.Login, &user.Active, &user.PartnerID, &user.Name, &user.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, dto.NewAuthError("USER_NOT_FOUND", "Utilisateur introuvable", nil)
		}
		return nil, fmt.Errorf("erreur récupération compte: %w", err)
	}

	groupNames, err := s.getGroupNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Role = s.roleResolver.Resolve(groupNames)

	return &user, nil
}

// UpdateUser met à jour un compte et son partner dans une transaction.
// Le champ active est réservé aux administrateurs.
func (s *AuthService) UpdateUser(ctx context.Context, targetID int, req dto.UpdateUserRequest, requesterID int, requesterRole string) (*dto.UserData, error) {
	isAdmin := requesterRole == RoleAdmin
	isSelf := requesterID == targetID

	if !isSelf && !isAdmin {
		return nil, dto.NewAuthError("FORBIDDEN", "Accès refusé", nil)
	}

	if req.Active != nil && !isAdmin {
		return nil, dto.NewAuthError("FORBIDDEN", "Seul un administrateur peut changer le statut actif/inactif", nil)
	}

	// Charger le compte cible
	current, err := s.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// Unicité du login
	if req.Login != nil && *req.Login != current.Login {
		var exists bool
		err := s.db.QueryRow(ctx, queries.UserQueries.CheckLoginExists, *req.Login, targetID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("erreur vérification login: %w", err)
		}
		if exists {
			return nil, dto.NewAuthError("LOGIN_TAKEN", "Login déjà utilisé", nil)
		}
	}

	var hashed *string
	if req.Password != nil && *req.Password != "" {
		h, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		hashed = &h
	}

	err = s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		if err := tx.Exec(ctx, queries.UserQueries.UpdateUser, targetID, req.Login, hashed, req.Active); err != nil {
			return fmt.Errorf("erreur mise à jour compte: %w", err)
		}

		if req.Name != nil || req.Email != nil {
			if err := tx.Exec(ctx, queries.UserQueries.UpdatePartner, current.PartnerID, req.Name, req.Email); err != nil {
				return fmt.Errorf("erreur mise à jour partner: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, targetID)
}

// GetUserStats retourne la liste des comptes hors groupes administrateurs
func (s *AuthService) GetUserStats(ctx context.Context) (*dto.UserStatsResponse, error) {
	patterns := aliasPatterns(s.roleResolver.adminAliases)

	rows, err := s.db.Query(ctx, queries.UserQueries.GetNonAdminUsers, patterns)
	if err != nil {
		return nil, fmt.Errorf("erreur statistiques comptes: %w", err)
	}
	defer rows.Close()

	stats := &dto.UserStatsResponse{Users: []dto.UserStatsEntry{}}
	for rows.Next() {
		var entry dto.UserStatsEntry
		if err := rows.Scan(&entry.ID, &entry.Login, &entry.Active, &entry.Email); err != nil {
			return nil, fmt.Errorf("erreur lecture compte: %w", err)
		}
		stats.Users = append(stats.Users, entry)
	}

	stats.TotalUsers = len(stats.Users)
	return stats, nil
}

// GetClients retourne les comptes appartenant aux groupes clients
func (s *AuthService) GetClients(ctx context.Context) ([]dto.ClientEntry, error) {
	patterns := aliasPatterns(s.roleResolver.clientAliases)

	rows, err := s.db.Query(ctx, queries.UserQueries.GetClientAccounts, patterns)
	if err != nil {
		return nil, fmt.Errorf("erreur récupération clients: %w", err)
	}
	defer rows.Close()

	clients := []dto.ClientEntry{}
	for rows.Next() {
		var entry dto.ClientEntry
		if err := rows.Scan(&entry.ID, &entry.Login, &entry.Active, &entry.PartnerID, &entry.Name, &entry.Email); err != nil {
			return nil, fmt.Errorf("erreur lecture client: %w", err)
		}
		clients = append(clients, entry)
	}

	return clients, nil
}

// getGroupNames récupère les noms de groupes d'un compte
func (s *AuthService) getGroupNames(ctx context.Context, userID int) ([]string, error) {
	rows, err := s.db.Query(ctx, queries.UserQueries.GetGroupNames, userID)
	if err != nil {
		return nil, fmt.Errorf("erreur récupération groupes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erreur lecture groupe: %w", err)
		}
		names = append(names, name)
	}

	return names, nil
}

// aliasPatterns transforme les alias en motifs ILIKE
func aliasPatterns(aliases []string) []string {
	patterns := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		patterns = append(patterns, "%"+alias+"%")
	}
	return patterns
}

/* --------------------------- Rate limiting Redis -------------------------- */

// checkRateLimit refuse la connexion après maxLoginAttempts échecs.
// Redis indisponible = pas de rate limiting, la connexion continue.
func (s *AuthService) checkRateLimit(ctx context.Context, identifier string) error {
	key, err := s.redisClient.GenerateKey("auth_ratelimit", strings.ToLower(identifier))
	if err != nil {
		return nil
	}

	val, err := s.redisClient.Get(ctx, key)
	if err != nil || val == "" {
		return nil
	}

	var attempts int
	fmt.Sscanf(val, "%d", &attempts)

	if attempts >= maxLoginAttempts {
		ttl, _ := s.redisClient.Client().TTL(ctx, key).Result()
		return dto.NewAuthError("RATE_LIMIT_EXCEEDED", "Trop de tentatives de connexion", map[string]interface{}{
			"retry_after_seconds": int(ttl.Seconds()),
		})
	}

	return nil
}

func (s *AuthService) incrementFailedAttempt(ctx context.Context, identifier string) {
	key, err := s.redisClient.GenerateKey("auth_ratelimit", strings.ToLower(identifier))
	if err != nil {
		return
	}

	val, err := s.redisClient.Incr(ctx, key)
	if err != nil {
		return
	}
	if val == 1 {
		ttl, _ := s.redisClient.GetTTL("auth_ratelimit")
		s.redisClient.Expire(ctx, key, time.Duration(ttl)*time.Second)
	}
}

func (s *AuthService) clearRateLimit(ctx context.Context, identifier string) {
	key, err := s.redisClient.GenerateKey("auth_ratelimit", strings.ToLower(identifier))
	if err != nil {
		return
	}
	s.redisClient.Del(ctx, key)
}
