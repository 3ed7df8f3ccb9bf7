package rules

import (
	"context"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
)

// CatalogFile is the YAML document used to seed products and their rules
type CatalogFile struct {
	Products []ProductEntry `yaml:"products"`
}

// ProductEntry is one product with its rules as written in a catalog file
type ProductEntry struct {
	ID          string                `yaml:"id"`
	Name        catalog.LocalizedName `yaml:"name"`
	BasePrice   Money                 `yaml:"base_price"`
	PricingMode string                `yaml:"pricing_mode"`
	TemplateID  string                `yaml:"template_id"`
	LayoutMode  string                `yaml:"layout_mode"`
	Baseline    NutritionEntry        `yaml:"baseline"`
	Containers  []ContainerEntry      `yaml:"containers"`
	Sizes       []SizeEntry           `yaml:"sizes"`
	Groups      []GroupEntry          `yaml:"groups"`
}

// ContainerEntry is a container as written in a catalog file
type ContainerEntry struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	PriceModifier Money          `yaml:"price_modifier"`
	MaxSizes      int            `yaml:"max_sizes"`
	Nutrition     NutritionEntry `yaml:"nutrition"`
}

// SizeEntry is a size as written in a catalog file
type SizeEntry struct {
	ID                  string  `yaml:"id"`
	Name                string  `yaml:"name"`
	PriceModifier       Money   `yaml:"price_modifier"`
	NutritionMultiplier float64 `yaml:"nutrition_multiplier"`
}

// GroupEntry is a customization group as written in a catalog file
type GroupEntry struct {
	ID            string        `yaml:"id"`
	Name          string        `yaml:"name"`
	Icon          string        `yaml:"icon"`
	Required      bool          `yaml:"required"`
	MinSelections int           `yaml:"min_selections"`
	MaxSelections int           `yaml:"max_selections"`
	Options       []OptionEntry `yaml:"options"`
}

// OptionEntry is an option as written in a catalog file
type OptionEntry struct {
	ID        string         `yaml:"id"`
	NameAr    string         `yaml:"name_ar"`
	NameEn    string         `yaml:"name_en"`
	Price     Money          `yaml:"price"`
	Image     string         `yaml:"image"`
	Nutrition NutritionEntry `yaml:"nutrition"`
}

// NutritionEntry is a nutrition profile as written in a catalog file
type NutritionEntry struct {
	Calories float64 `yaml:"calories"`
	Protein  float64 `yaml:"protein"`
	Carbs    float64 `yaml:"carbs"`
	Fat      float64 `yaml:"fat"`
	Sugar    float64 `yaml:"sugar"`
	Fiber    float64 `yaml:"fiber"`
}

// Money is a decimal amount that accepts both 12.5 and "12.50" in YAML
type Money struct {
	decimal.Decimal
}

// UnmarshalYAML parses the raw scalar text so no float rounding happens
func (m *Money) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return errors.InvalidArgumentf("line %d: invalid amount %q", node.Line, node.Value)
	}
	m.Decimal = d
	return nil
}

// LoadCatalogFile reads and parses a catalog file
func LoadCatalogFile(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses a catalog document
func ParseCatalog(data []byte) (*CatalogFile, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog")
	}
	return &file, nil
}

// PutInputs converts every entry into a PutInput, preserving file order
func (f *CatalogFile) PutInputs() []PutInput {
	inputs := make([]PutInput, 0, len(f.Products))
	for _, entry := range f.Products {
		product, rules := entry.toCatalog()
		inputs = append(inputs, PutInput{Product: product, Rules: rules})
	}
	return inputs
}

// Seed stores every product of the file in repo. It stops at the first
// product the repository rejects.
func Seed(ctx context.Context, repo Repository, file *CatalogFile) (int, error) {
	stored := 0
	for _, input := range file.PutInputs() {
		if _, err := repo.Put(ctx, input); err != nil {
			return stored, errors.Wrapf(err, "failed to seed product %s", input.Product.ID)
		}
		stored++
	}
	return stored, nil
}

func (e ProductEntry) toCatalog() (*catalog.Product, *catalog.Rules) {
	product := &catalog.Product{
		ID:          e.ID,
		Name:        e.Name,
		BasePrice:   e.BasePrice.Decimal,
		PricingMode: catalog.PricingMode(e.PricingMode),
		Baseline:    e.Baseline.toCatalog(),
		TemplateID:  e.TemplateID,
		LayoutMode:  e.LayoutMode,
	}
	if product.PricingMode == "" {
		product.PricingMode = catalog.PricingModeAdditive
	}

	rules := &catalog.Rules{
		Containers: make([]catalog.ContainerOption, 0, len(e.Containers)),
		Sizes:      make([]catalog.SizeOption, 0, len(e.Sizes)),
		Groups:     make([]catalog.CustomizationGroup, 0, len(e.Groups)),
	}
	for _, c := range e.Containers {
		rules.Containers = append(rules.Containers, catalog.ContainerOption{
			ID:            c.ID,
			Name:          c.Name,
			PriceModifier: c.PriceModifier.Decimal,
			Nutrition:     c.Nutrition.toCatalog(),
			MaxSizes:      c.MaxSizes,
		})
	}
	for _, s := range e.Sizes {
		rules.Sizes = append(rules.Sizes, catalog.SizeOption{
			ID:                  s.ID,
			Name:                s.Name,
			PriceModifier:       s.PriceModifier.Decimal,
			NutritionMultiplier: s.NutritionMultiplier,
		})
	}
	for _, g := range e.Groups {
		group := catalog.CustomizationGroup{
			GroupID:       g.ID,
			Name:          g.Name,
			Icon:          g.Icon,
			IsRequired:    g.Required,
			MinSelections: g.MinSelections,
			MaxSelections: g.MaxSelections,
			Options:       make([]catalog.Option, 0, len(g.Options)),
		}
		for _, o := range g.Options {
			group.Options = append(group.Options, catalog.Option{
				ID:        o.ID,
				Name:      catalog.LocalizedName{Ar: o.NameAr, En: o.NameEn},
				Price:     o.Price.Decimal,
				Nutrition: o.Nutrition.toCatalog(),
				Image:     o.Image,
			})
		}
		rules.Groups = append(rules.Groups, group)
	}

	return product, rules
}

func (n NutritionEntry) toCatalog() catalog.Nutrition {
	return catalog.Nutrition{
		Calories: n.Calories,
		Protein:  n.Protein,
		Carbs:    n.Carbs,
		Fat:      n.Fat,
		Sugar:    n.Sugar,
		Fiber:    n.Fiber,
	}
}
