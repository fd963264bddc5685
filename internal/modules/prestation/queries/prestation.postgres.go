package queries

// PrestationQueries regroupe les requêtes SQL du registre des prestations
var PrestationQueries = struct {
	Insert             string
	Summary            string
	ListByState        string
	CountByState       string
	ListGeneric        string
	GetByID            string
	GetFull            string
	Update             string
	Delete             string
	ListByClient       string
	DocumentsByPrestID string
}{
	/**
	 * Crée une prestation avec les valeurs résolues
	 * Paramètres: $1 = activity_id, $2 = department_id, $3 = analytic_account_id,
	 *             $4 = country_id, $5 = name_primary, $6 = date (texte, nullable),
	 *             $7 = entete, $8 = reference_bordereau, $9 = office_order_id,
	 *             $10 = iat, $11 = prestation, $12 = responsible_id,
	 *             $13 = intervenats, $14 = desctiption, $15 = t, $16 = active
	 */
	Insert: `
		INSERT INTO prestation_prestation (
			alias_model, activity_id, department_id, analytic_account_id,
			country_id, privacy_visibility, name_primary, date, entete,
			reference_bordereau, office_order_id, iat, prestation,
			responsible_id, intervenats, desctiption, t, active, state
		)
		VALUES (
			'project.task', $1, $2, $3,
			$4, 'employees', $5, NULLIF($6, '')::date, $7,
			NULLIF($8, ''), $9, NULLIF($10, ''), NULLIF($11, ''),
			$12, NULLIF($13, ''), NULLIF($14, ''), $15, $16, 'draft'
		)
		RETURNING id
	`,

	/**
	 * Compte les prestations par état
	 */
	Summary: `
		SELECT LOWER(COALESCE(state, '')), COUNT(id)::int
		FROM prestation_prestation
		GROUP BY LOWER(COALESCE(state, ''))
	`,

	/**
	 * Liste paginée filtrée par état avec recherche optionnelle
	 * Paramètres: $1 = state, $2 = motif de recherche ('' = aucun),
	 *             $3 = limit, $4 = offset
	 */
	ListByState: `
		SELECT
			pp.id,
			COALESCE(pp.prestation, ''),
			COALESCE(pp.name_primary, ''),
			pp.date,
			COALESCE(pp.iat, ''),
			COALESCE(pp.reference_bordereau, ''),
			pp.department_id,
			pp.activity_id,
			COALESCE(d.name, ''),
			COALESCE(pt.name, '')
		FROM prestation_prestation pp
		LEFT JOIN hr_department d ON d.id = pp.department_id
		LEFT JOIN product_template pt ON pt.id = pp.activity_id
		WHERE pp.state = $1
		  AND ($2 = '' OR pp.prestation ILIKE $2 OR pp.name_primary ILIKE $2)
		ORDER BY pp.id DESC
		LIMIT $3 OFFSET $4
	`,

	/**
	 * Total de la liste paginée par état
	 * Paramètres: $1 = state, $2 = motif de recherche ('' = aucun)
	 */
	CountByState: `
		SELECT COUNT(*)::int
		FROM prestation_prestation pp
		WHERE pp.state = $1
		  AND ($2 = '' OR pp.prestation ILIKE $2 OR pp.name_primary ILIKE $2)
	`,

	/**
	 * Liste générique normalisée avec filtres optionnels
	 * Paramètres: $1 = state ('' = tous), $2 = motif de recherche ('' = aucun),
	 *             $3 = limit, $4 = offset
	 */
	ListGeneric: `
		SELECT
			pp.id,
			COALESCE(pp.prestation, ''),
			COALESCE(pp.name_primary, pp.desctiption, ''),
			COALESCE(pp.iat, ''),
			COALESCE(pp.intervenats, ''),
			pp.date,
			pp.date_start_prevue,
			COALESCE(pp.commercial, ''),
			COALESCE(pp.state, 'Demande'),
			pp.department_id,
			COALESCE(d.name, ''),
			pp.activity_id,
			COALESCE(pt.name, ''),
			COALESCE(rp.name, ''),
			COALESCE(resp.name, '')
		FROM prestation_prestation pp
		LEFT JOIN hr_department d ON d.id = pp.department_id
		LEFT JOIN product_template pt ON pt.id = pp.activity_id
		LEFT JOIN res_partner rp ON rp.id = pp.partner_id
		LEFT JOIN res_users ru ON ru.id = pp.responsible_id
		LEFT JOIN res_partner resp ON resp.id = ru.partner_id
		WHERE ($1 = '' OR pp.state = $1)
		  AND ($2 = '' OR pp.prestation ILIKE $2 OR pp.name_primary ILIKE $2
		       OR pp.desctiption ILIKE $2 OR pp.iat ILIKE $2)
		ORDER BY pp.id DESC
		LIMIT $3 OFFSET $4
	`,

	/**
	 * Détail normalisé d'une prestation
	 * Paramètres: $1 = prestation_id
	 */
	GetByID: `
		SELECT
			pp.id,
			COALESCE(pp.prestation, ''),
			COALESCE(pp.name_primary, pp.desctiption, ''),
			COALESCE(pp.iat, ''),
			COALESCE(pp.intervenats, ''),
			pp.date,
			pp.date_start_prevue,
			COALESCE(pp.commercial, ''),
			COALESCE(pp.state, 'Demande'),
			pp.department_id,
			COALESCE(d.name, ''),
			pp.activity_id,
			COALESCE(pt.name, ''),
			COALESCE(rp.name, ''),
			COALESCE(resp.name, '')
		FROM prestation_prestation pp
		LEFT JOIN hr_department d ON d.id = pp.department_id
		LEFT JOIN product_template pt ON pt.id = pp.activity_id
		LEFT JOIN res_partner rp ON rp.id = pp.partner_id
		LEFT JOIN res_users ru ON ru.id = pp.responsible_id
		LEFT JOIN res_partner resp ON resp.id = ru.partner_id
		WHERE pp.id = $1
	`,

	/**
	 * Détail complet avec les libellés pays/analytique/responsable
	 * Paramètres: $1 = prestation_id
	 */
	GetFull: `
		SELECT
			pp.id,
			COALESCE(pp.prestation, ''),
			COALESCE(pp.name_primary, ''),
			COALESCE(pp.state, 'Demande'),
			pp.date,
			COALESCE(pp.iat, ''),
			COALESCE(pp.entete, ''),
			COALESCE(pp.reference_bordereau, ''),
			COALESCE(pp.intervenats, ''),
			COALESCE(d.name, ''),
			COALESCE(pt.name, ''),
			COALESCE(co.name, ''),
			COALESCE(aaa.name, ''),
			COALESCE(aaa.code, ''),
			COALESCE(ru_partner.name, '')
		FROM prestation_prestation pp
		LEFT JOIN hr_department d ON d.id = pp.department_id
		LEFT JOIN product_template pt ON pt.id = pp.activity_id
		LEFT JOIN res_country co ON co.id = pp.country_id
		LEFT JOIN account_analytic_account aaa ON aaa.id = pp.analytic_account_id
		LEFT JOIN res_users ru ON ru.id = pp.responsible_id
		LEFT JOIN res_partner ru_partner ON ru_partner.id = ru.partner_id
		WHERE pp.id = $1
	`,

	/**
	 * Mise à jour partielle d'une prestation
	 * Paramètres: $1 = id, $2 = name_primary, $3 = prestation, $4 = state,
	 *             $5 = iat, $6 = intervenats, $7 = reference_bordereau,
	 *             $8 = department_id, $9 = activity_id, $10 = responsible_id,
	 *             $11 = date (texte, nullable)
	 */
	Update: `
		UPDATE prestation_prestation
		SET name_primary = COALESCE($2, name_primary),
		    prestation = COALESCE($3, prestation),
		    state = COALESCE($4, state),
		    iat = COALESCE($5, iat),
		    intervenats = COALESCE($6, intervenats),
		    reference_bordereau = COALESCE($7, reference_bordereau),
		    department_id = COALESCE($8, department_id),
		    activity_id = COALESCE($9, activity_id),
		    responsible_id = COALESCE($10, responsible_id),
		    date = COALESCE(NULLIF($11, '')::date, date)
		WHERE id = $1
	`,

	/**
	 * Supprime une prestation
	 * Paramètres: $1 = prestation_id
	 */
	Delete: `
		DELETE FROM prestation_prestation
		WHERE id = $1
	`,

	/**
	 * Prestations d'un client (la colonne client porte l'id utilisateur)
	 * Paramètres: $1 = identifiant client (texte)
	 */
	ListByClient: `
		SELECT
			pp.id,
			COALESCE(pp.prestation, ''),
			COALESCE(pp.name_primary, pp.desctiption, ''),
			COALESCE(pp.iat, ''),
			COALESCE(pp.intervenats, ''),
			pp.date,
			pp.date_start_prevue,
			COALESCE(pp.commercial, ''),
			COALESCE(pp.state, 'Demande'),
			pp.department_id,
			COALESCE(d.name, ''),
			pp.activity_id,
			COALESCE(pt.name, ''),
			COALESCE(rp.name, ''),
			COALESCE(resp.name, '')
		FROM prestation_prestation pp
		LEFT JOIN hr_department d ON d.id = pp.department_id
		LEFT JOIN product_template pt ON pt.id = pp.activity_id
		LEFT JOIN res_partner rp ON rp.id = pp.partner_id
		LEFT JOIN res_users ru ON ru.id = pp.responsible_id
		LEFT JOIN res_partner resp ON resp.id = ru.partner_id
		WHERE pp.client = $1
		ORDER BY pp.id DESC
	`,

	/**
	 * Documents rattachés à une prestation, plus récents en premier
	 * Paramètres: $1 = prestation_id
	 */
	DocumentsByPrestID: `
		SELECT id, COALESCE(type, ''), COALESCE(file_path, ''), TRUE, upload_date
		FROM documents
		WHERE prestation_id = $1
		ORDER BY id DESC
	`,
}

// ResolutionQueries regroupe les requêtes des chaînes de résolution
// des identifiants à la création
var ResolutionQueries = struct {
	ActivityExists        string
	ActivityByName        string
	ActivityByDefaultCode string
	AnalyticExists        string
	FirstAnalytic         string
	OfficeOrderExists     string
	CountryByName         string
	DepartmentExists      string
	DepartmentByCodeName  string
	PartnerByName         string
}{
	/**
	 * Paramètres: $1 = product_template id
	 */
	ActivityExists: `
		SELECT EXISTS (SELECT 1 FROM product_template WHERE id = $1)
	`,

	/**
	 * Paramètres: $1 = libellé exact (insensible à la casse)
	 */
	ActivityByName: `
		SELECT id FROM product_template
		WHERE name ILIKE $1
		LIMIT 1
	`,

	/**
	 * Résolution par code article
	 * Paramètres: $1 = default_code
	 */
	ActivityByDefaultCode: `
		SELECT pt.id
		FROM product_product pp
		JOIN product_template pt ON pt.id = pp.product_tmpl_id
		WHERE pp.default_code ILIKE $1
		LIMIT 1
	`,

	/**
	 * Paramètres: $1 = account_analytic_account id
	 */
	AnalyticExists: `
		SELECT EXISTS (SELECT 1 FROM account_analytic_account WHERE id = $1)
	`,

	FirstAnalytic: `
		SELECT id FROM account_analytic_account
		ORDER BY id
		LIMIT 1
	`,

	/**
	 * Paramètres: $1 = office_order id
	 */
	OfficeOrderExists: `
		SELECT EXISTS (SELECT 1 FROM office_order WHERE id = $1)
	`,

	/**
	 * Paramètres: $1 = nom du pays
	 */
	CountryByName: `
		SELECT id FROM res_country
		WHERE name ILIKE $1
		LIMIT 1
	`,

	/**
	 * Paramètres: $1 = hr_department id
	 */
	DepartmentExists: `
		SELECT EXISTS (SELECT 1 FROM hr_department WHERE id = $1)
	`,

	/**
	 * Paramètres: $1 = code ou nom du département
	 */
	DepartmentByCodeName: `
		SELECT id FROM hr_department
		WHERE code ILIKE $1 OR name ILIKE $1
		LIMIT 1
	`,

	/**
	 * Paramètres: $1 = nom du partner
	 */
	PartnerByName: `
		SELECT id FROM res_partner
		WHERE name ILIKE $1
		LIMIT 1
	`,
}

// LookupQueries alimente les listes déroulantes du front
var LookupQueries = struct {
	SearchActivities string
	ListDepartments  string
	UsersByGroup     string
}{
	/**
	 * Paramètres: $1 = motif de recherche ('' = tous)
	 */
	SearchActivities: `
		SELECT id, COALESCE(name, '')
		FROM product_template
		WHERE ($1 = '' OR name ILIKE $1)
		ORDER BY name ASC
		LIMIT 30
	`,

	/**
	 * Paramètres: $1 = préfixe de code ('' = tous)
	 */
	ListDepartments: `
		SELECT id, COALESCE(code, ''), COALESCE(name, '')
		FROM hr_department
		WHERE ($1 = '' OR code ILIKE $1)
		ORDER BY code ASC
		LIMIT 100
	`,

	/**
	 * Comptes membres d'un groupe, par id de groupe ou motif de nom
	 * Paramètres: $1 = group_id (0 = par motif), $2 = motif de nom,
	 *             $3 = motif sur le login ('' = aucun), $4 = limit
	 */
	UsersByGroup: `
		SELECT DISTINCT
			u.id,
			u.login,
			u.active,
			u.partner_id,
			COALESCE(p.name, ''),
			COALESCE(p.email, '')
		FROM res_users u
		JOIN res_groups_users_rel rel ON rel.uid = u.id
		JOIN res_groups g ON g.id = rel.gid
		LEFT JOIN res_partner p ON p.id = u.partner_id
		WHERE (($1 > 0 AND g.id = $1) OR ($1 = 0 AND g.name ILIKE $2))
		  AND ($3 = '' OR u.login ILIKE $3)
		ORDER BY COALESCE(p.name, '') ASC
		LIMIT $4
	`,
}
