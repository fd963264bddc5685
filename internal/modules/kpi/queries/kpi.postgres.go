package queries

// Socle commun des agrégats annuels sur la table RAW public.fiche_suivi_2025_raw.
// Mapping des colonnes c1..c147 utilisées :
//
//	demande_id    = concat_ws('-', c3, c4)  (code projet + sous-code)
//	d_ech         = c10 (réception échantillons, MM/DD/YY ou MM/DD/YYYY)
//	d_fact        = c22 (facturation)
//	d_rap         = c26 (rapport)
//	delai_exec_j  = c23, delai_trait_j = c24, statut_delai = c25
//	client = c5, marque_modele = c6+c7, kg = c8, type_essai = c9
//
// Les dates ne sont parsées que si elles matchent un motif MM/DD/YY(YY).
// Paramètres : $1 = année, $2 = seuil rapport en jours
const dashboardBase = `
	WITH params AS (
		SELECT
			make_date($1::int,1,1)::date                       AS d0,
			(make_date($1::int,1,1) + interval '1 year')::date AS d1,
			$2::int                                            AS delai_j
	),
	base AS (
		SELECT
			concat_ws('-', NULLIF(c3,''), NULLIF(c4,'')) AS demande_id,
			1::int AS nb_ech,
			CASE
				WHEN c10 ~ '^[0-9]{1,2}/[0-9]{1,2}/[0-9]{2}$'  THEN to_date(c10, 'FMMM/FMDD/YY')
				WHEN c10 ~ '^[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$'  THEN to_date(c10, 'FMMM/FMDD/YYYY')
				ELSE NULL
			END AS d_ech,
			CASE
				WHEN c22 ~ '^[0-9]{1,2}/[0-9]{1,2}/[0-9]{2}$'  THEN to_date(c22, 'FMMM/FMDD/YY')
				WHEN c22 ~ '^[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$'  THEN to_date(c22, 'FMMM/FMDD/YYYY')
				ELSE NULL
			END AS d_fact,
			CASE
				WHEN c26 ~ '^[0-9]{1,2}/[0-9]{1,2}/[0-9]{2}$'  THEN to_date(c26, 'FMMM/FMDD/YY')
				WHEN c26 ~ '^[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$'  THEN to_date(c26, 'FMMM/FMDD/YYYY')
				ELSE NULL
			END AS d_rap,
			NULLIF(regexp_replace(COALESCE(c23,''),'[^0-9]','','g'),'')::int AS delai_exec_j,
			NULLIF(regexp_replace(COALESCE(c24,''),'[^0-9]','','g'),'')::int AS delai_trait_j,
			NULLIF(c25,'') AS statut_delai,
			NULLIF(c5,'')                                                    AS client,
			NULLIF(trim(both ' ' from concat_ws(' ', NULLIF(c6,''), NULLIF(c7,''))), '') AS marque_modele,
			NULLIF(
				regexp_replace(
					regexp_replace(COALESCE(c8,''), '[^0-9,.-]', '', 'g'),
					',', '.', 'g'
				),
				''
			)::numeric                                                        AS kg,
			NULLIF(c9,'')                                                     AS type_essai
		FROM public.fiche_suivi_2025_raw
	),
	totaux AS (
		SELECT
			(SELECT COUNT(DISTINCT b.demande_id) FROM base b, params p
				WHERE b.d_ech >= p.d0 AND b.d_ech < p.d1) AS demandes_total,
			(SELECT COUNT(*) FROM base b, params p
				WHERE b.d_ech >= p.d0 AND b.d_ech < p.d1) AS echantillons_total
	),
	acheves AS (
		SELECT
			(SELECT COUNT(DISTINCT b.demande_id) FROM base b, params p
				WHERE b.d_rap IS NOT NULL AND b.d_rap >= p.d0 AND b.d_rap < p.d1) AS demandes,
			(SELECT COUNT(*) FROM base b, params p
				WHERE b.d_rap IS NOT NULL AND b.d_rap >= p.d0 AND b.d_rap < p.d1) AS echantillons
	),
	encours AS (
		SELECT
			(SELECT COUNT(DISTINCT b.demande_id) FROM base b, params p
				WHERE b.d_ech IS NOT NULL AND b.d_ech >= p.d0 AND b.d_ech < p.d1 AND b.d_rap IS NULL) AS demandes,
			(SELECT COUNT(*) FROM base b, params p
				WHERE b.d_ech IS NOT NULL AND b.d_ech >= p.d0 AND b.d_ech < p.d1 AND b.d_rap IS NULL) AS echantillons
	),
	attente_conf AS (
		SELECT
			(SELECT COUNT(DISTINCT b.demande_id) FROM base b, params p
				WHERE b.d_ech >= p.d0 AND b.d_ech < p.d1 AND b.d_rap IS NULL AND b.d_fact IS NULL) AS n
	),
	durees AS (
		SELECT
			ROUND(AVG(b.delai_exec_j)::numeric, 0)  AS realisation_j,
			ROUND(AVG(b.delai_trait_j)::numeric, 0) AS traitement_j
		FROM base b, params p
		WHERE b.d_rap IS NOT NULL
			AND b.d_rap >= p.d0 AND b.d_rap < p.d1
			AND (b.delai_exec_j IS NOT NULL OR b.delai_trait_j IS NOT NULL)
	),
	respect AS (
		SELECT COALESCE(
			ROUND(
				100.0 * SUM((b.delai_exec_j IS NOT NULL AND b.delai_exec_j <= p.delai_j)::int)
				/ NULLIF(SUM((b.delai_exec_j IS NOT NULL)::int), 0)
			, 0), 0) AS pct
		FROM base b, params p
		WHERE b.d_rap IS NOT NULL
			AND b.d_rap >= p.d0 AND b.d_rap < p.d1
	),
	reception AS (
		SELECT COUNT(*) AS appareils,
					 COALESCE(SUM(nb_ech),0) AS ech,
					 COALESCE(SUM(nb_ech),0) * 0.64 AS m2
		FROM base b
		WHERE b.d_ech IS NOT NULL
			AND b.d_rap IS NULL
	),
	cal_jours AS (
		SELECT d::date AS d
		FROM params p,
				 generate_series((SELECT d0 FROM params),
												 (SELECT d1 FROM params) - interval '1 day',
												 interval '1 day') d
		WHERE EXTRACT(ISODOW FROM d) BETWEEN 1 AND 5
	),
	jours_travail AS (SELECT COUNT(*)::int AS n FROM cal_jours),
	util_jours AS (
		SELECT COUNT(DISTINCT dd.d)::int AS n
		FROM (
			SELECT daterange(
							 GREATEST(b.d_ech, (SELECT d0 FROM params)),
							 LEAST(COALESCE(b.d_rap, CURRENT_DATE) + 1, (SELECT d1 FROM params)),
							 '[]'
						 ) AS r
			FROM base b
			WHERE b.d_ech IS NOT NULL
				AND GREATEST(b.d_ech, (SELECT d0 FROM params))
						< LEAST(COALESCE(b.d_rap, CURRENT_DATE) + 1, (SELECT d1 FROM params))
		) x
		JOIN LATERAL (
			SELECT d::date
			FROM params p,
					 generate_series((SELECT d0 FROM params),
													 (SELECT d1 FROM params) - interval '1 day',
													 interval '1 day') d
		) dd ON dd.d <@ x.r
	),
	planning_raw AS (
		SELECT
			b.client,
			b.marque_modele,
			b.kg,
			b.type_essai,
			b.d_ech AS d_reception
		FROM base b
		WHERE b.d_rap IS NULL
			AND b.d_ech IS NOT NULL
			AND b.d_ech >= CURRENT_DATE - interval '14 days'
	),
	planning AS (
		SELECT COALESCE(json_agg(
			json_build_object(
				'client',        pr.client,
				'marqueModele',  pr.marque_modele,
				'kg',            pr.kg,
				'typeEssai',     pr.type_essai,
				'date',          to_char(pr.d_reception,'YYYY-MM-DD')
			)
			ORDER BY pr.d_reception DESC
		), '[]'::json) AS items
		FROM planning_raw pr
	)`

// DashboardQueries regroupe les deux variantes du tableau de bord.
// La variante principale agrège la table mensuelle public.lab_perf_mensuelle,
// la variante de repli s'en passe (disponibilité à 0, occupation estimée
// depuis les jours d'utilisation).
var DashboardQueries = struct {
	WithMonthlyPerf string
	Fallback        string
}{
	WithMonthlyPerf: dashboardBase + `,
	mens AS (
		SELECT
			SUM(jours_travail)             AS jtrav,
			SUM(arret_programme_jours)     AS arret_prog,
			SUM(arret_non_programme_jours) AS arret_nonprog,
			SUM(utilisation_jours)         AS jutil,
			SUM(nb_pannes)                 AS nb_pannes
		FROM public.lab_perf_mensuelle m
		WHERE m.annee = $1::int
	),
	taux AS (
		SELECT
			COALESCE(ROUND(100.0 * ((SELECT jtrav FROM mens) - ((SELECT arret_prog FROM mens)+(SELECT arret_nonprog FROM mens)))
				/ NULLIF((SELECT jtrav FROM mens),0), 0), 0) AS dispo_pct,
			COALESCE(ROUND(100.0 * ((SELECT jtrav FROM mens) - (SELECT jutil FROM mens))
				/ NULLIF((SELECT jtrav FROM mens),0), 0), 0) AS occupation_pct
	),
	arrets AS (
		SELECT
			COALESCE((SELECT arret_prog    FROM mens), 0)::int AS jours_planned,
			COALESCE((SELECT arret_nonprog FROM mens), 0)::int AS jours_unplanned,
			COALESCE((SELECT nb_pannes     FROM mens), 0)::int AS nb_pannes,
			CASE WHEN (SELECT nb_pannes FROM mens) > 0
					 THEN ROUND((SELECT arret_nonprog FROM mens)::numeric/(SELECT nb_pannes FROM mens),0)
					 ELSE NULL END AS mttr_j,
			CASE WHEN (SELECT nb_pannes FROM mens) > 0
					 THEN ROUND(((SELECT jtrav FROM mens)-(SELECT arret_nonprog FROM mens))::numeric/(SELECT nb_pannes FROM mens),0)
					 ELSE NULL END AS mtbf_jours
	)
	SELECT
		(SELECT demandes_total     FROM totaux)  AS demandes_total,
		(SELECT echantillons_total FROM totaux)  AS echantillons_total,
		(SELECT demandes           FROM acheves) AS acheves_demandes,
		(SELECT echantillons       FROM acheves) AS acheves_echantillons,
		(SELECT demandes           FROM encours) AS encours_demandes,
		(SELECT echantillons       FROM encours) AS encours_echantillons,
		(SELECT n                  FROM attente_conf) AS attente_confirmation,
		COALESCE((SELECT realisation_j FROM durees),0) AS duree_moy_realisation_j,
		COALESCE((SELECT traitement_j  FROM durees),0) AS duree_moy_traitement_j,
		COALESCE((SELECT pct           FROM respect),0) AS respect_delais_pct,
		COALESCE((SELECT appareils     FROM reception),0) AS reception_appareils,
		COALESCE((SELECT m2            FROM reception),0) AS reception_m2,
		0 AS stockage_appareils,
		0.0::numeric AS stockage_m2,
		COALESCE((SELECT dispo_pct     FROM taux),0)  AS taux_dispo_pct,
		COALESCE((SELECT occupation_pct FROM taux),0) AS taux_occupation_pct,
		COALESCE((SELECT nb_pannes       FROM arrets),0) AS nb_pannes,
		(SELECT mttr_j                     FROM arrets)  AS mttr_j,
		COALESCE((SELECT jours_planned     FROM arrets),0) AS arret_programme_jours,
		COALESCE((SELECT jours_unplanned   FROM arrets),0) AS arret_non_programme_jours,
		(SELECT mtbf_jours                 FROM arrets)  AS mtbf_jours,
		(SELECT items FROM planning) AS planning`,

	Fallback: dashboardBase + `,
	taux AS (
		SELECT
			0::numeric AS dispo_pct,
			ROUND(
				100.0 * ((SELECT n FROM jours_travail) - COALESCE((SELECT n FROM util_jours),0))
				/ NULLIF((SELECT n FROM jours_travail),0)
			, 0) AS occupation_pct
	)
	SELECT
		(SELECT demandes_total     FROM totaux)  AS demandes_total,
		(SELECT echantillons_total FROM totaux)  AS echantillons_total,
		(SELECT demandes           FROM acheves) AS acheves_demandes,
		(SELECT echantillons       FROM acheves) AS acheves_echantillons,
		(SELECT demandes           FROM encours) AS encours_demandes,
		(SELECT echantillons       FROM encours) AS encours_echantillons,
		(SELECT n                  FROM attente_conf) AS attente_confirmation,
		COALESCE((SELECT realisation_j FROM durees),0) AS duree_moy_realisation_j,
		COALESCE((SELECT traitement_j  FROM durees),0) AS duree_moy_traitement_j,
		COALESCE((SELECT pct           FROM respect),0) AS respect_delais_pct,
		COALESCE((SELECT appareils     FROM reception),0) AS reception_appareils,
		COALESCE((SELECT m2            FROM reception),0) AS reception_m2,
		0 AS stockage_appareils, 0.0::numeric AS stockage_m2,
		COALESCE((SELECT dispo_pct     FROM taux),0)  AS taux_dispo_pct,
		COALESCE((SELECT occupation_pct FROM taux),0) AS taux_occupation_pct,
		0   AS nb_pannes,
		NULL::numeric AS mttr_j,
		0   AS arret_programme_jours,
		0   AS arret_non_programme_jours,
		NULL::numeric AS mtbf_jours,
		(SELECT items FROM planning) AS planning`,
}

// PrestationQueries regroupe les répartitions de prestations.
var PrestationQueries = struct {
	ByActivity string
	ByState    string
}{
	/**
	 * Répartition des prestations par activité sur une fenêtre de création.
	 * Paramètres : $1 = date début (vide = sans borne), $2 = date fin, $3 = état
	 */
	ByActivity: `
		WITH filtres AS (
			SELECT NULLIF($1, '')::timestamptz AS dfrom,
						 NULLIF($2, '')::timestamptz AS dto,
						 NULLIF($3, '')::text        AS fstate
		),
		base AS (
			SELECT p.*
			FROM public.prestation_prestation p, filtres f
			WHERE (f.dfrom  IS NULL OR p.create_date >= f.dfrom)
				AND (f.dto    IS NULL OR p.create_date  < f.dto)
				AND (f.fstate IS NULL OR p.state = f.fstate)
		),
		agg AS (
			SELECT
				a.id   AS activity_id,
				a.name AS activity_name,
				COUNT(b.id)                                             AS prestations,
				COUNT(DISTINCT b.product_product_id)                    AS nb_products,
				SUM((b.state = 'done')::int)                            AS done,
				SUM((b.state = 'cancel')::int)                          AS cancel,
				SUM((b.state IS NULL OR b.state NOT IN ('done','cancel'))::int) AS in_progress,
				COALESCE(SUM(b.amount_dop), 0)                          AS total_amount
			FROM base b
			LEFT JOIN public.activity_activity a ON a.id = b.activity_id
			GROUP BY a.id, a.name
		)
		SELECT
			activity_id,
			COALESCE(activity_name, 'Sans activité') AS activity_name,
			prestations,
			nb_products,
			done,
			cancel,
			in_progress,
			total_amount,
			ROUND(100.0 * prestations / NULLIF(SUM(prestations) OVER (), 0), 2) AS pct_of_total
		FROM agg
		ORDER BY prestations DESC NULLS LAST`,

	/**
	 * Répartition des prestations par état sur une fenêtre de création.
	 * Paramètres : $1 = date début (vide = sans borne), $2 = date fin
	 */
	ByState: `
		WITH filtres AS (
			SELECT NULLIF($1, '')::timestamptz AS dfrom,
						 NULLIF($2, '')::timestamptz AS dto
		),
		base AS (
			SELECT p.*
			FROM public.prestation_prestation p, filtres f
			WHERE (f.dfrom IS NULL OR p.create_date >= f.dfrom)
				AND (f.dto   IS NULL OR p.create_date  < f.dto)
		),
		agg AS (
			SELECT
				COALESCE(NULLIF(TRIM(state), ''), 'unknown') AS state,
				COUNT(*) AS n
			FROM base
			GROUP BY 1
		)
		SELECT
			state,
			n AS count,
			ROUND(100.0 * n / NULLIF(SUM(n) OVER(), 0), 2) AS pct
		FROM agg
		ORDER BY count DESC, state ASC`,
}
