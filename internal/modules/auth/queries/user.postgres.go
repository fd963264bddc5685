package queries

// UserQueries regroupe toutes les requêtes SQL pour la gestion des comptes
var UserQueries = struct {
	GetActiveByLoginOrEmail string
	GetByID                 string
	GetGroupNames           string
	CheckLoginExists        string
	InsertPartner           string
	InsertUser              string
	FindGroupsByPatterns    string
	LinkUserGroup           string
	UpdateUser              string
	UpdatePartner           string
	GetNonAdminUsers        string
	GetClientAccounts       string
}{
	/**
	 * Récupère un compte actif par login OU email partner
	 * Paramètres: $1 = login ou email
	 */
	GetActiveByLoginOrEmail: `
		SELECT
			u.id,
			u.login,
			COALESCE(u.password, ''),
			u.active,
			u.partner_id,
			p.name,
			COALESCE(p.email, '')
		FROM res_users u
		JOIN res_partner p ON p.id = u.partner_id
		WHERE u.active = TRUE
		  AND (u.login = $1 OR p.email = $1)
		LIMIT 1
	`,

	/**
	 * Récupère un compte par id (actif ou non)
	 * Paramètres: $1 = user_id
	 */
	GetByID: `
		SELECT
			u.id,
			u.login,
			u.active,
			u.partner_id,
			p.name,
			COALESCE(p.email, '')
		FROM res_users u
		JOIN res_partner p ON p.id = u.partner_id
		WHERE u.id = $1
	`,

	/**
	 * Noms des groupes d'un compte (pour la résolution des rôles)
	 * Paramètres: $1 = user_id
	 */
	GetGroupNames: `
		SELECT g.name
		FROM res_groups g
		JOIN res_groups_users_rel rel ON rel.gid = g.id
		WHERE rel.uid = $1
	`,

	/**
	 * Vérifie l'unicité d'un login (hors compte exclu)
	 * Paramètres: $1 = login, $2 = id exclu (0 pour aucun)
	 */
	CheckLoginExists: `
		SELECT EXISTS(
			SELECT 1 FROM res_users
			WHERE login = $1 AND id <> $2
		)
	`,

	/**
	 * Crée le partner associé au compte
	 * Paramètres: $1 = name, $2 = email
	 */
	InsertPartner: `
		INSERT INTO res_partner (name, email)
		VALUES ($1, $2)
		RETURNING id
	`,

	/**
	 * Crée le compte (inactif tant qu'un admin ne l'a pas activé)
	 * Paramètres: $1 = login, $2 = password hash, $3 = partner_id
	 */
	InsertUser: `
		INSERT INTO res_users (login, password, active, partner_id)
		VALUES ($1, $2, FALSE, $3)
		RETURNING id
	`,

	/**
	 * Groupes correspondant à une liste de motifs ILIKE
	 * Paramètres: $1 = motifs ('%alias%')
	 */
	FindGroupsByPatterns: `
		SELECT id, name
		FROM res_groups
		WHERE name ILIKE ANY($1)
	`,

	/**
	 * Lie un compte à un groupe
	 * Paramètres: $1 = gid, $2 = uid
	 */
	LinkUserGroup: `
		INSERT INTO res_groups_users_rel (gid, uid)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,

	/**
	 * Met à jour les champs fournis d'un compte (NULL = inchangé)
	 * Paramètres: $1 = id, $2 = login, $3 = password hash, $4 = active
	 */
	UpdateUser: `
		UPDATE res_users
		SET login      = COALESCE($2, login),
		    password   = COALESCE($3, password),
		    active     = COALESCE($4, active),
		    write_date = NOW()
		WHERE id = $1
	`,

	/**
	 * Met à jour les champs fournis du partner (NULL = inchangé)
	 * Paramètres: $1 = partner_id, $2 = name, $3 = email
	 */
	UpdatePartner: `
		UPDATE res_partner
		SET name       = COALESCE($2, name),
		    email      = COALESCE($3, email),
		    write_date = NOW()
		WHERE id = $1
	`,

	/**
	 * Comptes hors groupes administrateurs (statistiques)
	 * Paramètres: $1 = motifs admin ('%alias%')
	 */
	GetNonAdminUsers: `
		SELECT u.id, u.login, u.active, COALESCE(p.email, '')
		FROM res_users u
		JOIN res_partner p ON p.id = u.partner_id
		WHERE u.id NOT IN (
			SELECT rel.uid
			FROM res_groups_users_rel rel
			JOIN res_groups g ON g.id = rel.gid
			WHERE g.name ILIKE ANY($1)
		)
		ORDER BY u.login ASC
	`,

	/**
	 * Comptes appartenant aux groupes clients
	 * Paramètres: $1 = motifs client ('%alias%')
	 */
	GetClientAccounts: `
		SELECT DISTINCT u.id, u.login, u.active, u.partner_id, p.name, COALESCE(p.email, '')
		FROM res_users u
		JOIN res_partner p ON p.id = u.partner_id
		JOIN res_groups_users_rel rel ON rel.uid = u.id
		JOIN res_groups g ON g.id = rel.gid
		WHERE g.name ILIKE ANY($1)
		ORDER BY p.name ASC
	`,
}
