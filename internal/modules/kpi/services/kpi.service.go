package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/modules/kpi/dto"
	"cetime-core/internal/modules/kpi/queries"
)

const (
	// DefaultYear est l'année du tableau de bord par défaut
	DefaultYear = 2025
	// DefaultDeadlineDays est le seuil de respect des délais par défaut
	DefaultDeadlineDays = 30
)

// KPIService calcule les indicateurs du laboratoire
type KPIService struct {
	db *postgres.Client
}

func NewKPIService(db *postgres.Client) *KPIService {
	return &KPIService{db: db}
}

// dashboardRow porte une ligne brute du tableau de bord
type dashboardRow struct {
	demandesTotal          int
	echantillonsTotal      int
	achevesDemandes        int
	achevesEchantillons    int
	encoursDemandes        int
	encoursEchantillons    int
	attenteConfirmation    int
	dureeMoyRealisationJ   float64
	dureeMoyTraitementJ    float64
	respectDelaisPct       float64
	receptionAppareils     int
	receptionM2            float64
	stockageAppareils      int
	stockageM2             float64
	tauxDispoPct           float64
	tauxOccupationPct      float64
	nbPannes               int
	mttrJ                  *float64
	arretProgrammeJours    int
	arretNonProgrammeJours int
	mtbfJours              *float64
	planning               []byte
}

// Dashboard calcule le tableau de bord annuel. La requête principale agrège
// la table mensuelle lab_perf_mensuelle. Si elle échoue (table absente par
// exemple), on retombe sur la variante sans performance mensuelle.
func (s *KPIService) Dashboard(ctx context.Context, year, deadlineDays int) (*dto.DashboardPayload, error) {
	if year <= 0 {
		year = DefaultYear
	}
	if deadlineDays <= 0 {
		deadlineDays = DefaultDeadlineDays
	}

	row, err := s.queryDashboard(ctx, queries.DashboardQueries.WithMonthlyPerf, year, deadlineDays)
	if err != nil {
		slog.Warn("Tableau de bord KPI: repli sans performance mensuelle",
			"year", year, "error", err.Error())
		row, err = s.queryDashboard(ctx, queries.DashboardQueries.Fallback, year, deadlineDays)
		if err != nil {
			return nil, fmt.Errorf("erreur calcul tableau de bord: %w", err)
		}
	}

	return buildPayload(row)
}

func (s *KPIService) queryDashboard(ctx context.Context, sql string, year, deadlineDays int) (*dashboardRow, error) {
	var r dashboardRow
	err := s.db.QueryRow(ctx, sql, year, deadlineDays).Scan(
		&r.demandesTotal,
		&r.echantillonsTotal,
		&r.achevesDemandes,
		&r.achevesEchantillons,
		&r.encoursDemandes,
		&r.encoursEchantillons,
		&r.attenteConfirmation,
		&r.dureeMoyRealisationJ,
		&r.dureeMoyTraitementJ,
		&r.respectDelaisPct,
		&r.receptionAppareils,
		&r.receptionM2,
		&r.stockageAppareils,
		&r.stockageM2,
		&r.tauxDispoPct,
		&r.tauxOccupationPct,
		&r.nbPannes,
		&r.mttrJ,
		&r.arretProgrammeJours,
		&r.arretNonProgrammeJours,
		&r.mtbfJours,
		&r.planning,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func buildPayload(r *dashboardRow) (*dto.DashboardPayload, error) {
	planning := []dto.PlanningItem{}
	if len(r.planning) > 0 {
		if err := json.Unmarshal(r.planning, &planning); err != nil {
			return nil, fmt.Errorf("erreur lecture planning: %w", err)
		}
	}

	return &dto.DashboardPayload{
		NombreTotal: dto.VolumeCounts{
			Demandes:     r.demandesTotal,
			Echantillons: r.echantillonsTotal,
		},
		Acheves: dto.VolumeCounts{
			Demandes:     r.achevesDemandes,
			Echantillons: r.achevesEchantillons,
		},
		EnCours: dto.VolumeCounts{
			Demandes:     r.encoursDemandes,
			Echantillons: r.encoursEchantillons,
		},
		AttenteConfirmation:  r.attenteConfirmation,
		DureeMoyRealisationJ: int(r.dureeMoyRealisationJ),
		DureeMoyTraitementJ:  int(r.dureeMoyTraitementJ),
		RespectDelaisPct:     r.respectDelaisPct,
		Reception: dto.SpaceCounts{
			Appareils:      r.receptionAppareils,
			EspaceOccupeM2: round1(r.receptionM2),
		},
		StockageRetour: dto.SpaceCounts{
			Appareils:      r.stockageAppareils,
			EspaceOccupeM2: round1(r.stockageM2),
		},
		TauxDisponibilitePct:   r.tauxDispoPct,
		TauxOccupationPct:      r.tauxOccupationPct,
		NbPannes:               r.nbPannes,
		MtbfJours:              r.mtbfJours,
		MttrJours:              r.mttrJ,
		ArretProgrammeJours:    r.arretProgrammeJours,
		ArretNonProgrammeJours: r.arretNonProgrammeJours,
		AchevesAggregat:        r.achevesDemandes,
		EnCoursAggregat:        r.encoursDemandes,
		Planning:               planning,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// PrestationsByActivity ventile les prestations par activité sur une fenêtre
// de création, avec le pourcentage de chaque activité dans le total
func (s *KPIService) PrestationsByActivity(ctx context.Context, from, to, state string) (*dto.ByActivityResponse, error) {
	rows, err := s.db.Query(ctx, queries.PrestationQueries.ByActivity, from, to, state)
	if err != nil {
		return nil, fmt.Errorf("erreur répartition par activité: %w", err)
	}
	defer rows.Close()

	result := []dto.ActivityRow{}
	for rows.Next() {
		var r dto.ActivityRow
		if err := rows.Scan(&r.ActivityID, &r.ActivityName, &r.Prestations, &r.NbProducts,
			&r.Done, &r.Cancel, &r.InProgress, &r.TotalAmount, &r.PctOfTotal); err != nil {
			return nil, fmt.Errorf("erreur lecture répartition par activité: %w", err)
		}
		result = append(result, r)
	}

	return &dto.ByActivityResponse{
		Rows:   result,
		Params: map[string]interface{}{"from": orNil(from), "to": orNil(to), "state": orNil(state)},
	}, nil
}

// PrestationsByState ventile les prestations par état, les états vides
// regroupés sous "unknown"
func (s *KPIService) PrestationsByState(ctx context.Context, from, to string) (*dto.ByStateResponse, error) {
	rows, err := s.db.Query(ctx, queries.PrestationQueries.ByState, from, to)
	if err != nil {
		return nil, fmt.Errorf("erreur répartition par état: %w", err)
	}
	defer rows.Close()

	result := []dto.StateAggRow{}
	total := 0
	for rows.Next() {
		var r dto.StateAggRow
		if err := rows.Scan(&r.State, &r.Count, &r.Pct); err != nil {
			return nil, fmt.Errorf("erreur lecture répartition par état: %w", err)
		}
		total += r.Count
		result = append(result, r)
	}

	return &dto.ByStateResponse{
		Rows:   result,
		Total:  total,
		Params: map[string]interface{}{"from": orNil(from), "to": orNil(to)},
	}, nil
}

func orNil(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
