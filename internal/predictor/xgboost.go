package predictor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"listingprice/internal/features"
)

// objectives whose raw margin is the prediction
var identityObjectives = map[string]bool{
	"":                     true,
	"reg:squarederror":     true,
	"reg:linear":           true,
	"reg:absoluteerror":    true,
	"reg:pseudohubererror": true,
}

// XGBoost evaluates a gradient boosted tree ensemble saved with
// Booster.save_model("model.json"). It is immutable once loaded.
type XGBoost struct {
	source       string
	objective    string
	baseScore    float32
	featureNames []string
	trees        []tree
}

type tree struct {
	left        []int
	right       []int
	splitIndex  []int
	splitCond   []float32
	defaultLeft []bool
}

type xgbDocument struct {
	Learner struct {
		FeatureNames      []string `json:"feature_names"`
		LearnerModelParam struct {
			BaseScore  string `json:"base_score"`
			NumFeature string `json:"num_feature"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
		GradientBooster struct {
			Name  string `json:"name"`
			Model struct {
				Trees []xgbTree `json:"trees"`
			} `json:"model"`
		} `json:"gradient_booster"`
	} `json:"learner"`
}

type xgbTree struct {
	LeftChildren    []int      `json:"left_children"`
	RightChildren   []int      `json:"right_children"`
	SplitIndices    []int      `json:"split_indices"`
	SplitConditions []float32  `json:"split_conditions"`
	DefaultLeft     []flexBool `json:"default_left"`
}

// flexBool accepts both 0/1 and true/false; XGBoost versions differ.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// LoadXGBoost reads the model at path and checks it against schema
func LoadXGBoost(path string, schema *features.Schema) (*XGBoost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrArtifact, path, err)
	}
	return ParseXGBoost(data, schema, path)
}

// ParseXGBoost decodes an XGBoost JSON document. When the document names its
// features they must be exactly the schema's columns and their order is used
// for evaluation; otherwise the schema order is assumed.
func ParseXGBoost(data []byte, schema *features.Schema, source string) (*XGBoost, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc xgbDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	learner := doc.Learner

	objective := learner.Objective.Name
	if !identityObjectives[objective] {
		return nil, fmt.Errorf("%w: unsupported objective %q", ErrArtifact, objective)
	}

	baseScore, err := parseScalar(learner.LearnerModelParam.BaseScore)
	if err != nil {
		return nil, fmt.Errorf("%w: base_score: %v", ErrArtifact, err)
	}
	numFeature, err := strconv.Atoi(learner.LearnerModelParam.NumFeature)
	if err != nil {
		return nil, fmt.Errorf("%w: num_feature: %v", ErrArtifact, err)
	}

	names := learner.FeatureNames
	if len(names) > 0 {
		missing, extra := schema.SameSet(names)
		if len(missing) > 0 || len(extra) > 0 || len(names) != schema.Len() {
			return nil, fmt.Errorf("%w: model features differ from schema (missing %v, extra %v)",
				ErrSchemaMismatch, missing, extra)
		}
	} else {
		if numFeature != schema.Len() {
			return nil, fmt.Errorf("%w: model has %d features, schema has %d",
				ErrSchemaMismatch, numFeature, schema.Len())
		}
		names = schema.Names()
	}

	m := &XGBoost{
		source:       source,
		objective:    objective,
		baseScore:    baseScore,
		featureNames: append([]string(nil), names...),
		trees:        make([]tree, 0, len(learner.GradientBooster.Model.Trees)),
	}
	for i, raw := range learner.GradientBooster.Model.Trees {
		t, err := newTree(raw, len(names))
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrArtifact, i, err)
		}
		m.trees = append(m.trees, t)
	}
	return m, nil
}

// parseScalar reads XGBoost's string encoded floats, "5E-1" or "[5E-1]"
func parseScalar(s string) (float32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if i := strings.IndexByte(s, ','); i >= 0 {
		return 0, fmt.Errorf("multi-target value %q", s)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func newTree(raw xgbTree, numFeature int) (tree, error) {
	n := len(raw.LeftChildren)
	if len(raw.RightChildren) != n || len(raw.SplitIndices) != n ||
		len(raw.SplitConditions) != n || len(raw.DefaultLeft) != n {
		return tree{}, fmt.Errorf("node arrays have different lengths")
	}

	t := tree{
		left:        raw.LeftChildren,
		right:       raw.RightChildren,
		splitIndex:  raw.SplitIndices,
		splitCond:   raw.SplitConditions,
		defaultLeft: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		t.defaultLeft[i] = bool(raw.DefaultLeft[i])
		l, r := t.left[i], t.right[i]
		if l == -1 && r == -1 {
			continue
		}
		// children always have a larger id than their parent, which also
		// rules out cycles during evaluation
		if l <= i || r <= i || l >= n || r >= n {
			return tree{}, fmt.Errorf("node %d has invalid children %d/%d", i, l, r)
		}
		if t.splitIndex[i] >= numFeature {
			return tree{}, fmt.Errorf("node %d splits on feature %d of %d", i, t.splitIndex[i], numFeature)
		}
	}
	return t, nil
}

// leaf walks t for row. Thresholds and leaf values are float32 in the
// artifact and rows are compared at that precision, as XGBoost does.
func (t *tree) leaf(row []float32) float32 {
	i := 0
	for t.left[i] != -1 {
		x := row[t.splitIndex[i]]
		switch {
		case math.IsNaN(float64(x)):
			if t.defaultLeft[i] {
				i = t.left[i]
			} else {
				i = t.right[i]
			}
		case x < t.splitCond[i]:
			i = t.left[i]
		default:
			i = t.right[i]
		}
	}
	return t.splitCond[i]
}

// Predict returns base_score plus the leaf value of every tree, summed in
// float32
func (m *XGBoost) Predict(v *features.Vector) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: empty row", ErrSchemaMismatch)
	}
	if v.Len() != len(m.featureNames) {
		return 0, fmt.Errorf("%w: row has %d columns, model expects %d",
			ErrSchemaMismatch, v.Len(), len(m.featureNames))
	}

	row := make([]float32, len(m.featureNames))
	for i, name := range m.featureNames {
		x, ok := v.Get(name)
		if !ok {
			return 0, fmt.Errorf("%w: row has no column %q", ErrSchemaMismatch, name)
		}
		row[i] = float32(x)
	}

	sum := m.baseScore
	for i := range m.trees {
		sum += m.trees[i].leaf(row)
	}
	out := float64(sum)
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, ErrNonFinite
	}
	return out, nil
}

// FeatureNames returns the columns in the order the trees index them
func (m *XGBoost) FeatureNames() []string {
	return append([]string(nil), m.featureNames...)
}

// Trees returns the ensemble size
func (m *XGBoost) Trees() int { return len(m.trees) }

// BaseScore returns the global bias
func (m *XGBoost) BaseScore() float64 { return float64(m.baseScore) }

// Source returns where the model was loaded from
func (m *XGBoost) Source() string { return m.source }

var _ Model = (*XGBoost)(nil)
