package artifacts

import (
	"embed"

	"cgpa-predictor/internal/common/validation"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	modelKindSchema        = mustSchema("model_kind")
	linearRegressionSchema = mustSchema("linear_regression")
	treeEnsembleSchema     = mustSchema("tree_ensemble")
	scalerSchema           = mustSchema("scaler")
	labelEncodersSchema    = mustSchema("label_encoders")
	featureNamesSchema     = mustSchema("feature_names")
)

func mustSchema(name string) *validation.Schema {
	data, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
	if err != nil {
		panic(err)
	}
	return validation.MustCompile(name, string(data))
}

// checkDocument validates raw against s and folds any violations into one error.
func checkDocument(s *validation.Schema, raw []byte) error {
	res, err := s.Validate(raw)
	if err != nil {
		return err
	}
	return res.Err()
}
