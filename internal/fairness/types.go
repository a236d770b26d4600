package fairness

// Category is a bias category tag emitted by the upstream detector.
type Category string

const (
	CategoryGender    Category = "gender"
	CategoryRacial    Category = "racial"
	CategoryAge       Category = "age"
	CategoryPolitical Category = "political"
	CategoryReligious Category = "religious"
	CategoryEconomic  Category = "economic"
	CategoryCultural  Category = "cultural"
	CategoryLanguage  Category = "language"
	CategoryFraming   Category = "framing"
	CategoryOmission  Category = "omission"
	CategoryOther     Category = "other"
)

// Categories lists every known category in canonical order.
var Categories = []Category{
	CategoryGender,
	CategoryRacial,
	CategoryAge,
	CategoryPolitical,
	CategoryReligious,
	CategoryEconomic,
	CategoryCultural,
	CategoryLanguage,
	CategoryFraming,
	CategoryOmission,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// BiasInstance is a single tagged finding inside an analysed item.
type BiasInstance struct {
	Category    Category `json:"category"`
	Confidence  float64  `json:"confidence"`
	Sentence    string   `json:"sentence,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Mitigation  string   `json:"mitigation,omitempty"`
}

// AnalysisResult is the detector output for one item. A nil BiasInstances slice
// means the field was absent and is rejected by Validate.
type AnalysisResult struct {
	BiasDetected  bool           `json:"biasDetected"`
	BiasInstances []BiasInstance `json:"biasInstances"`
}

// HasCategory reports whether any instance is tagged with c.
func (r AnalysisResult) HasCategory(c Category) bool {
	for _, inst := range r.BiasInstances {
		if inst.Category == c {
			return true
		}
	}
	return false
}

// DatasetInfo describes the audited dataset. It is carried through for reporting only.
type DatasetInfo struct {
	Size         int            `json:"size"`
	Demographics map[string]int `json:"demographics"`
	Categories   map[string]int `json:"categories"`
}

// FairnessMetrics holds the group-fairness ratios and base classification metrics.
type FairnessMetrics struct {
	StatisticalParity float64 `json:"statisticalParity"`
	EqualOpportunity  float64 `json:"equalOpportunity"`
	EqualizedOdds     float64 `json:"equalizedOdds"`
	DemographicParity float64 `json:"demographicParity"`
	DisparateImpact   float64 `json:"disparateImpact"`
	FalsePositiveRate float64 `json:"falsePositiveRate"`
	FalseNegativeRate float64 `json:"falseNegativeRate"`
	Accuracy          float64 `json:"accuracy"`
	Precision         float64 `json:"precision"`
	Recall            float64 `json:"recall"`
	F1Score           float64 `json:"f1Score"`
}

// FairnessScore is the mean of the five group-fairness ratios.
func (m FairnessMetrics) FairnessScore() float64 {
	return (m.StatisticalParity + m.EqualOpportunity + m.EqualizedOdds + m.DemographicParity + m.DisparateImpact) / 5
}

// OutOfRange returns the names of base metrics whose value lies outside [0,1].
// The accuracy definition counts every detected item as a true positive, so a batch
// where every item is detected scores above 1.
func (m FairnessMetrics) OutOfRange() []string {
	var out []string
	check := func(name string, v float64) {
		if v < 0 || v > 1 {
			out = append(out, name)
		}
	}
	check("accuracy", m.Accuracy)
	check("precision", m.Precision)
	check("recall", m.Recall)
	check("f1Score", m.F1Score)
	check("falsePositiveRate", m.FalsePositiveRate)
	check("falseNegativeRate", m.FalseNegativeRate)
	return out
}

// CategoryPerformance holds classification metrics restricted to one category.
type CategoryPerformance struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// RiskLevel is the discrete risk classification of an audit.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)
