package queries

// RendezVousQueries regroupe toutes les requêtes SQL du domaine rendez-vous
var RendezVousQueries = struct {
	Insert                 string
	GetByID                string
	UpdateStatutAgent      string
	AgentHasConfirmedOnDay string
	ListByClient           string
	ListByAgent            string
	ListAll                string
	ListPendingUnassigned  string
}{
	/**
	 * Crée un rendez-vous
	 * Paramètres: $1 = client_id, $2 = agent_id (NULL si en attente),
	 *             $3 = date_rdv, $4 = duree, $5 = statut, $6 = objet, $7 = notes
	 */
	Insert: `
		INSERT INTO rendezvous (client_id, agent_id, date_rdv, duree, statut, objet, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,

	/**
	 * Récupère un rendez-vous avec les informations partner du client
	 * et de l'agent
	 * Paramètres: $1 = rendezvous_id
	 */
	GetByID: `
		SELECT
			r.id,
			r.client_id,
			r.agent_id,
			r.date_rdv,
			r.duree,
			r.statut,
			COALESCE(r.objet, ''),
			COALESCE(r.notes, ''),
			COALESCE(pc.name, ''),
			COALESCE(pc.email, ''),
			COALESCE(pa.name, '')
		FROM rendezvous r
		LEFT JOIN res_users uc ON uc.id = r.client_id
		LEFT JOIN res_partner pc ON pc.id = uc.partner_id
		LEFT JOIN res_users ua ON ua.id = r.agent_id
		LEFT JOIN res_partner pa ON pa.id = ua.partner_id
		WHERE r.id = $1
	`,

	/**
	 * Met à jour le statut et l'agent d'un rendez-vous.
	 * L'index partiel rendezvous_agent_jour_valide_uniq lève 23505 si
	 * l'agent a déjà un rendez-vous validé ce jour-là.
	 * Paramètres: $1 = rendezvous_id, $2 = statut, $3 = agent_id (NULL = inchangé)
	 */
	UpdateStatutAgent: `
		UPDATE rendezvous
		SET statut = $2,
		    agent_id = COALESCE($3, agent_id)
		WHERE id = $1
	`,

	/**
	 * Vérifie si un agent a déjà un rendez-vous validé le même jour
	 * calendaire, en excluant un rendez-vous donné
	 * Paramètres: $1 = agent_id, $2 = jour (date), $3 = rendezvous_id exclu (0 = aucun)
	 */
	AgentHasConfirmedOnDay: `
		SELECT EXISTS (
			SELECT 1
			FROM rendezvous
			WHERE agent_id = $1
			  AND statut = 'valide'
			  AND date(date_rdv) = $2
			  AND id <> $3
		)
	`,

	/**
	 * Liste les rendez-vous d'un client avec le nom de l'agent affecté
	 * Paramètres: $1 = client_id
	 */
	ListByClient: `
		SELECT
			r.id,
			r.client_id,
			r.agent_id,
			r.date_rdv,
			r.duree,
			r.statut,
			COALESCE(r.objet, ''),
			COALESCE(r.notes, ''),
			COALESCE(pc.name, ''),
			COALESCE(pc.email, ''),
			COALESCE(pa.name, '')
		FROM rendezvous r
		LEFT JOIN res_users uc ON uc.id = r.client_id
		LEFT JOIN res_partner pc ON pc.id = uc.partner_id
		LEFT JOIN res_users ua ON ua.id = r.agent_id
		LEFT JOIN res_partner pa ON pa.id = ua.partner_id
		WHERE r.client_id = $1
		ORDER BY r.date_rdv DESC
	`,

	/**
	 * Liste les rendez-vous affectés à un agent
	 * Paramètres: $1 = agent_id
	 */
	ListByAgent: `
		SELECT
			r.id,
			r.client_id,
			r.agent_id,
			r.date_rdv,
			r.duree,
			r.statut,
			COALESCE(r.objet, ''),
			COALESCE(r.notes, ''),
			COALESCE(pc.name, ''),
			COALESCE(pc.email, ''),
			COALESCE(pa.name, '')
		FROM rendezvous r
		LEFT JOIN res_users uc ON uc.id = r.client_id
		LEFT JOIN res_partner pc ON pc.id = uc.partner_id
		LEFT JOIN res_users ua ON ua.id = r.agent_id
		LEFT JOIN res_partner pa ON pa.id = ua.partner_id
		WHERE r.agent_id = $1
		ORDER BY r.date_rdv DESC
	`,

	/**
	 * Liste tous les rendez-vous pour le calendrier administrateur
	 */
	ListAll: `
		SELECT
			r.id,
			r.client_id,
			r.agent_id,
			r.date_rdv,
			r.duree,
			r.statut,
			COALESCE(r.objet, ''),
			COALESCE(r.notes, ''),
			COALESCE(pc.name, ''),
			COALESCE(pc.email, ''),
			COALESCE(pa.name, '')
		FROM rendezvous r
		LEFT JOIN res_users uc ON uc.id = r.client_id
		LEFT JOIN res_partner pc ON pc.id = uc.partner_id
		LEFT JOIN res_users ua ON ua.id = r.agent_id
		LEFT JOIN res_partner pa ON pa.id = ua.partner_id
		ORDER BY r.date_rdv
	`,

	/**
	 * Liste les demandes en attente sans agent affecté
	 */
	ListPendingUnassigned: `
		SELECT
			r.id,
			r.client_id,
			r.agent_id,
			r.date_rdv,
			r.duree,
			r.statut,
			COALESCE(r.objet, ''),
			COALESCE(r.notes, ''),
			COALESCE(pc.name, ''),
			COALESCE(pc.email, ''),
			''
		FROM rendezvous r
		LEFT JOIN res_users uc ON uc.id = r.client_id
		LEFT JOIN res_partner pc ON pc.id = uc.partner_id
		WHERE r.statut = 'en_attente'
		  AND r.agent_id IS NULL
		ORDER BY r.date_rdv
	`,
}

// AnnuaireQueries expose les informations partner nécessaires aux notifications
var AnnuaireQueries = struct {
	GetUserContact string
}{
	/**
	 * Récupère le nom et l'email partner d'un compte
	 * Paramètres: $1 = user_id
	 */
	GetUserContact: `
		SELECT COALESCE(p.name, ''), COALESCE(p.email, '')
		FROM res_users u
		JOIN res_partner p ON p.id = u.partner_id
		WHERE u.id = $1
	`,
}

// DisponibiliteQueries regroupe les requêtes SQL des créneaux de disponibilité
var DisponibiliteQueries = struct {
	Insert              string
	ListByAgent         string
	ListAll             string
	AgentHasWindowOnDay string
	FindCoveringAgent   string
}{
	/**
	 * Crée un créneau de disponibilité
	 * Paramètres: $1 = agent_id, $2 = start_at, $3 = end_at
	 */
	Insert: `
		INSERT INTO disponibilite (agent_id, start_at, end_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`,

	/**
	 * Liste les créneaux d'un agent, du plus ancien au plus récent
	 * Paramètres: $1 = agent_id
	 */
	ListByAgent: `
		SELECT id, agent_id, start_at, end_at
		FROM disponibilite
		WHERE agent_id = $1
		ORDER BY start_at ASC
	`,

	/**
	 * Liste tous les créneaux déclarés
	 */
	ListAll: `
		SELECT id, agent_id, start_at, end_at
		FROM disponibilite
		ORDER BY start_at ASC
	`,

	/**
	 * Vérifie si un agent a déjà un créneau le même jour calendaire
	 * Paramètres: $1 = agent_id, $2 = jour (date)
	 */
	AgentHasWindowOnDay: `
		SELECT EXISTS (
			SELECT 1
			FROM disponibilite
			WHERE agent_id = $1
			  AND date(start_at) = $2
		)
	`,

	/**
	 * Agent du premier créneau (par début croissant) couvrant entièrement
	 * l'intervalle demandé, candidat unique de l'allocateur
	 * Paramètres: $1 = début du rendez-vous, $2 = fin du rendez-vous
	 */
	FindCoveringAgent: `
		SELECT agent_id
		FROM disponibilite
		WHERE start_at <= $1
		  AND end_at >= $2
		ORDER BY start_at ASC, id ASC
		LIMIT 1
	`,
}
