package geocode

// staticCityCoords is the curated fallback list of major Indonesian cities,
// keyed by normalized (city, province). Consulted when the kota_geo reference
// table has no entry for a pair.
var staticCityCoords = map[Key]Coord{
	{"jakarta", "dki jakarta"}:                 {-6.1754, 106.8272},
	{"jakarta pusat", "dki jakarta"}:           {-6.1857, 106.8410},
	{"jakarta timur", "dki jakarta"}:           {-6.2251, 106.9004},
	{"jakarta barat", "dki jakarta"}:           {-6.1683, 106.7589},
	{"jakarta selatan", "dki jakarta"}:         {-6.2615, 106.8106},
	{"bekasi", "jawa barat"}:                   {-6.2383, 106.9756},
	{"depok", "jawa barat"}:                    {-6.4025, 106.7942},
	{"bogor", "jawa barat"}:                    {-6.5971, 106.8060},
	{"bandung", "jawa barat"}:                  {-6.9147, 107.6098},
	{"cirebon", "jawa barat"}:                  {-6.7063, 108.5570},
	{"tasikmalaya", "jawa barat"}:              {-7.3276, 108.2207},
	{"semarang", "jawa tengah"}:                {-6.9667, 110.4167},
	{"surakarta", "jawa tengah"}:               {-7.5680, 110.8290},
	{"yogyakarta", "d.i. yogyakarta"}:          {-7.7972, 110.3688},
	{"surabaya", "jawa timur"}:                 {-7.2575, 112.7521},
	{"malang", "jawa timur"}:                   {-7.9839, 112.6214},
	{"kediri", "jawa timur"}:                   {-7.8178, 112.0114},
	{"sidoarjo", "jawa timur"}:                 {-7.4531, 112.7178},
	{"gresik", "jawa timur"}:                   {-7.1568, 112.6513},
	{"mojokerto", "jawa timur"}:                {-7.4726, 112.4381},
	{"banyuwangi", "jawa timur"}:               {-8.2186, 114.3676},
	{"denpasar", "bali"}:                       {-8.6500, 115.2167},
	{"mataram", "nusa tenggara barat"}:         {-8.5827, 116.1005},
	{"kupang", "nusa tenggara timur"}:          {-10.1718, 123.6070},
	{"pontianak", "kalimantan barat"}:          {-0.0263, 109.3425},
	{"palangkaraya", "kalimantan tengah"}:      {-2.2096, 113.9108},
	{"banjarmasin", "kalimantan selatan"}:      {-3.3186, 114.5944},
	{"samarinda", "kalimantan timur"}:          {-0.5022, 117.1536},
	{"balikpapan", "kalimantan timur"}:         {-1.2379, 116.8523},
	{"manado", "sulawesi utara"}:               {1.4748, 124.8421},
	{"makassar", "sulawesi selatan"}:           {-5.1477, 119.4327},
	{"kendari", "sulawesi tenggara"}:           {-3.9985, 122.5120},
	{"gorontalo", "gorontalo"}:                 {0.5416, 123.0596},
	{"palu", "sulawesi tengah"}:                {-0.8917, 119.8707},
	{"ambon", "maluku"}:                        {-3.6561, 128.1900},
	{"ternate", "maluku utara"}:                {0.7906, 127.3848},
	{"jayapura", "papua"}:                      {-2.5916, 140.6689},
	{"merauke", "papua selatan"}:               {-8.4932, 140.4018},
	{"padang", "sumatera barat"}:               {-0.9471, 100.4172},
	{"medan", "sumatera utara"}:                {3.5952, 98.6722},
	{"pekanbaru", "riau"}:                      {0.5071, 101.4478},
	{"palembang", "sumatera selatan"}:          {-2.9909, 104.7566},
	{"banda aceh", "aceh"}:                     {5.5483, 95.3238},
	{"bandar lampung", "lampung"}:              {-5.3971, 105.2668},
	{"pangkal pinang", "kep. bangka belitung"}: {-2.1291, 106.1096},
	{"tanjung pinang", "kepulauan riau"}:       {0.9170, 104.4469},
	{"serang", "banten"}:                       {-6.1200, 106.1500},
	{"cilegon", "banten"}:                      {-6.0023, 106.0119},
	{"manokwari", "papua barat"}:               {-0.8615, 134.0620},
	{"sorong", "papua barat daya"}:             {-0.8762, 131.2558},
}
