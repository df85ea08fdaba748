// Package refdata loads the registry's reference lists (enumerated values,
// occupations, hospitals, administrative regions) once at startup. Every
// list has a hardcoded fallback so an empty or unreachable reference table
// never blocks data entry.
package refdata

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Region pairs a city with its province.
type Region struct {
	City     string `json:"city"`
	Province string `json:"province"`
}

// Reference holds all allowed-value lists used by forms, the bulk template,
// and import validation. Built once per process and passed explicitly; never
// mutated after Load returns.
type Reference struct {
	BloodGroups      []string `json:"blood_groups"`
	Rhesus           []string `json:"rhesus"`
	Genders          []string `json:"genders"`
	EducationLevels  []string `json:"education_levels"`
	HemoTypes        []string `json:"hemo_types"`
	Severities       []string `json:"severities"`
	InhibitorFactors []string `json:"inhibitor_factors"`
	VirusTests       []string `json:"virus_tests"`
	TestResults      []string `json:"test_results"`
	Relations        []string `json:"relations"`
	TreatmentTypes   []string `json:"treatment_types"`
	CareServices     []string `json:"care_services"`
	Products         []string `json:"products"`
	Occupations      []string `json:"occupations"`
	Hospitals        []string `json:"hospitals"`
	Regions          []Region `json:"regions"`
}

var preferredSeverityOrder = []string{"Ringan", "Sedang", "Berat", "Tidak diketahui"}

// Defaults returns the built-in reference lists used when the database has
// nothing better.
func Defaults() *Reference {
	return &Reference{
		BloodGroups:      []string{"A", "B", "AB", "O"},
		Rhesus:           []string{"+", "-"},
		Genders:          []string{"Laki-laki", "Perempuan"},
		EducationLevels:  []string{"Tidak sekolah", "SD", "SMP", "SMA/SMK", "Diploma", "S1", "S2", "S3"},
		HemoTypes:        []string{"A", "B", "vWD", "Other"},
		Severities:       []string{"Ringan", "Sedang", "Berat", "Tidak diketahui"},
		InhibitorFactors: []string{"FVIII", "FIX"},
		VirusTests:       []string{"HBsAg", "Anti-HCV", "HIV"},
		TestResults:      []string{"positive", "negative", "indeterminate", "unknown"},
		Relations:        []string{"ayah", "ibu", "wali", "pasien", "lainnya"},
		TreatmentTypes:   []string{"Prophylaxis", "On Demand"},
		CareServices:     []string{"Rawat Jalan", "Rawat Inap"},
		Products: []string{
			"Plasma (FFP)", "Cryoprecipitate", "Konsentrat (plasma derived)",
			"Konsentrat (rekombinan)", "Konsentrat (prolonged half life)",
			"Prothrombin Complex", "DDAVP", "Emicizumab (Hemlibra)",
			"Konsentrat Bypassing Agent",
		},
		Occupations: []string{
			"Tidak bekerja", "Nelayan", "Petani", "PNS/TNI/Polri",
			"Karyawan Swasta", "Wiraswasta", "Pensiunan",
		},
		Hospitals: []string{
			"RSUPN Dr. Cipto Mangunkusumo - Jakarta Pusat - DKI Jakarta",
			"RS Kanker Dharmais - Jakarta Barat - DKI Jakarta",
		},
		Regions: []Region{
			{City: "KOTA BANDUNG", Province: "JAWA BARAT"},
			{City: "KOTA BEKASI", Province: "JAWA BARAT"},
			{City: "KOTA JAKARTA PUSAT", Province: "DKI JAKARTA"},
		},
	}
}

// Load builds the Reference from the database, falling back per-list to the
// defaults when a query fails or returns nothing.
func Load(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) *Reference {
	ref := Defaults()
	if pool == nil {
		return ref
	}

	loadEnum := func(typeName string, dst *[]string) {
		vals, err := fetchEnumValues(ctx, pool, typeName)
		if err != nil {
			logger.Warn().Err(err).Str("enum", typeName).Msg("enum lookup failed, using defaults")
			return
		}
		if len(vals) > 0 {
			*dst = vals
		}
	}

	loadEnum("blood_group_enum", &ref.BloodGroups)
	loadEnum("rhesus_enum", &ref.Rhesus)
	loadEnum("education_enum", &ref.EducationLevels)
	loadEnum("hemo_type_enum", &ref.HemoTypes)
	loadEnum("severity_enum", &ref.Severities)
	loadEnum("inhibitor_factor_enum", &ref.InhibitorFactors)
	loadEnum("virus_test_enum", &ref.VirusTests)
	loadEnum("test_result_enum", &ref.TestResults)
	loadEnum("relation_enum", &ref.Relations)

	// Severity carries a preferred display order when all four labels exist.
	ref.Severities = orderSeverities(ref.Severities)

	if vals, err := fetchColumn(ctx, pool, `SELECT name FROM pwh.occupations ORDER BY name`); err != nil {
		logger.Warn().Err(err).Msg("occupations lookup failed, using defaults")
	} else if len(vals) > 0 {
		ref.Occupations = vals
	}

	if vals, err := fetchColumn(ctx, pool,
		`SELECT CONCAT_WS(' - ', nama_rs, kota, provinsi) FROM public.rumah_sakit ORDER BY 1`); err != nil {
		logger.Warn().Err(err).Msg("hospital lookup failed, using defaults")
	} else if len(vals) > 0 {
		ref.Hospitals = vals
	}

	if regions, err := fetchRegions(ctx, pool); err != nil {
		logger.Warn().Err(err).Msg("region lookup failed, using defaults")
	} else if len(regions) > 0 {
		ref.Regions = regions
	}

	return ref
}

func fetchEnumValues(ctx context.Context, pool *pgxpool.Pool, typeName string) ([]string, error) {
	rows, err := pool.Query(ctx, `
		SELECT e.enumlabel
		FROM pg_type t
		JOIN pg_enum e ON t.oid = e.enumtypid
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE n.nspname = 'pwh' AND t.typname = $1
		ORDER BY e.enumsortorder`, typeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vals []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, rows.Err()
}

func fetchColumn(ctx context.Context, pool *pgxpool.Pool, query string) ([]string, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vals []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v != "" {
			vals = append(vals, v)
		}
	}
	return vals, rows.Err()
}

// fetchRegions joins the wilayah table against itself: province rows have a
// two-character code, city rows a four or five character code prefixed with
// their province code.
func fetchRegions(ctx context.Context, pool *pgxpool.Pool) ([]Region, error) {
	rows, err := pool.Query(ctx, `
		SELECT kota.nama, prov.nama
		FROM public.wilayah AS kota
		JOIN public.wilayah AS prov ON LEFT(kota.kode, 2) = prov.kode
		WHERE LENGTH(kota.kode) IN (4, 5) AND LENGTH(prov.kode) = 2
		ORDER BY kota.nama`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []Region
	for rows.Next() {
		var r Region
		if err := rows.Scan(&r.City, &r.Province); err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, rows.Err()
}

func orderSeverities(severities []string) []string {
	present := make(map[string]bool, len(severities))
	for _, s := range severities {
		present[s] = true
	}
	for _, want := range preferredSeverityOrder {
		if !present[want] {
			return severities
		}
	}
	return append([]string(nil), preferredSeverityOrder...)
}

// Handler serves the reference lists to form clients.
func Handler(ref *Reference) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, ref)
	}
}
