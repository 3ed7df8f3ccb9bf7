package catalog

// Nutrition is a six axis nutrition profile
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
	Fiber    float64 `json:"fiber"`
}

// Add returns the axis-wise sum of n and o
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
		Sugar:    n.Sugar + o.Sugar,
		Fiber:    n.Fiber + o.Fiber,
	}
}

// Scale multiplies every axis by factor
func (n Nutrition) Scale(factor float64) Nutrition {
	return Nutrition{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Carbs:    n.Carbs * factor,
		Fat:      n.Fat * factor,
		Sugar:    n.Sugar * factor,
		Fiber:    n.Fiber * factor,
	}
}

// IsZero reports whether every axis is zero
func (n Nutrition) IsZero() bool {
	return n == Nutrition{}
}
