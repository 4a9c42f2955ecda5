package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
)

// Catalog is the grouped list of sellable services. Group order and service
// order within a group are display order.
type Catalog struct {
	Groups []domain.ServiceGroup `yaml:"groups"`
}

// Default returns the compiled-in studio catalog.
func Default() Catalog {
	return Catalog{Groups: defaultGroups}
}

// LoadFromFile reads a catalog override from a yaml file.
func LoadFromFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Groups) == 0 {
		return Catalog{}, fmt.Errorf("catalog %s has no service groups", path)
	}
	return c, nil
}

// Load returns the catalog from path, or the compiled-in default when path is
// empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFromFile(path)
}

// Names returns the flattened set of valid service names, used for selection
// validation.
func (c Catalog) Names() map[string]struct{} {
	names := make(map[string]struct{})
	for _, group := range c.Groups {
		for _, service := range group.Services {
			names[service.Name] = struct{}{}
		}
	}
	return names
}

var defaultGroups = []domain.ServiceGroup{
	{
		Name: "Kasvohoidot ja meikit",
		Services: []domain.Service{
			{Name: "Rentouttava kasvohoito", Description: "Rentouttava ja kosteuttava kasvohoito. (Alkupuhdistuksen, kuorinnan, hieronnan, naamion, hoitovoiteen.)", PriceEUR: 35},
			{Name: "Ultraäänipuhdistus", Description: "Ultraäänipuhdistus on tehokas ja hellävarainen ihon syväpuhdistus ja kuorinta, joka samalla aktivoi ihon toimintoja.", PriceEUR: 45},
			{Name: "Kasvohoito", Description: "Alkupuhdistus, kuorinta ja yhdessä kosmetologin kanssa valittavat terapiat. Kesto max 60 min.", PriceEUR: 40},
			{Name: "Täydellinen kasvohoito", Description: "Alkupuhdistus, kuorinta ja yhdessä kosmetologin kanssa valittavat terapiat. Kesto max 90 min.", PriceEUR: 60},
			{Name: "Juhlameikki", Description: "Juhlameikki kuvauksia tai illanviettoa varten.", PriceEUR: 45},
			{Name: "Päivämeikki", Description: "Kevyt meikki päiväkäyttöön.", PriceEUR: 30},
		},
	},
	{
		Name: "Ripset/kulmat",
		Services: []domain.Service{
			{Name: "Ripsien värjäys", Description: "Ripsien värjäys kestovärillä.", PriceEUR: 10},
			{Name: "Kulmien värjäys ja muotoilu", Description: "Kulmien muotoilu ja värjäys kestovärillä.", PriceEUR: 15},
			{Name: "Ripsien ja kulmien värjäys ja muotoilu", Description: "Ripsien ja kulmien värjäys kestovärillä sekä kulmien muotoilu.", PriceEUR: 25},
			{Name: "Kulmien laminointi", Description: "Kulmakarvojen laminointi, värjäys & muotoilu", PriceEUR: 40},
			{Name: "Kulmien laminointi( organic)", Description: "Organic Brow on täysin luonnonmukainen hoitotuote", PriceEUR: 35},
		},
	},
	{
		Name: "Hieronta",
		Services: []domain.Service{
			{Name: "Klassinen hieronta (30 min)", Description: "Klassinen hieronta on lihaksia monipuolisesti muokkaavaa ja rentouttavaa hierontaa.", PriceEUR: 30},
			{Name: "Klassinen hieronta (45 min)", Description: "Klassinen hieronta on lihaksia monipuolisesti muokkaavaa ja rentouttavaa hierontaa.", PriceEUR: 40},
			{Name: "Intialainen päähieronta", Description: "Intialainen päähieronta. Hoito tehdään hiuspohjalle ja niskan alueelle.", PriceEUR: 30},
		},
	},
	{
		Name: "Jalkahoidot",
		Services: []domain.Service{
			{Name: "Jalkahoito", Description: "Kylpy, kovettumien poisto, kynsien leikkaus, kynsinauhojen ja ongelmakohtien hoito sekä voide. Sisältää kynsien lakkauksen.", PriceEUR: 45},
			{Name: "Spa-jalkahoito", Description: "Kylpy, kuorinta, kovettumien poisto, kynsien leikkaus, kynsinauhojen hoito, hieronta sekä voide. Sisältää kynsien lakkauksen.", PriceEUR: 60},
		},
	},
}
