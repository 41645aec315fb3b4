package identifier

const (
	dataAssetType        = "DataAssetIdentifier"
	expectationSuiteType = "ExpectationSuiteIdentifier"
	validationResultType = "ValidationResultIdentifier"
)

func init() {
	must(RegisterKeyType(dataAssetType, 3, func(p []string) Key {
		return DataAssetIdentifier{Datasource: p[0], Generator: p[1], GeneratorAsset: p[2]}
	}))
	must(RegisterKeyType(expectationSuiteType, 4, func(p []string) Key {
		return ExpectationSuiteIdentifier{
			DataAsset: DataAssetIdentifier{Datasource: p[0], Generator: p[1], GeneratorAsset: p[2]},
			Suite:     p[3],
		}
	}))
	must(RegisterKeyType(validationResultType, 5, func(p []string) Key {
		return ValidationResultIdentifier{
			ExpectationSuite: ExpectationSuiteIdentifier{
				DataAsset: DataAssetIdentifier{Datasource: p[0], Generator: p[1], GeneratorAsset: p[2]},
				Suite:     p[3],
			},
			RunID: p[4],
		}
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// DataAssetIdentifier names a data asset by its datasource, generator and
// generator asset.
type DataAssetIdentifier struct {
	Datasource     string
	Generator      string
	GeneratorAsset string
}

func (k DataAssetIdentifier) Parts() []string {
	return []string{k.Datasource, k.Generator, k.GeneratorAsset}
}

func (k DataAssetIdentifier) String() string {
	return render(dataAssetType, k.Parts())
}

// ExpectationSuiteIdentifier names an expectation suite of a data asset.
type ExpectationSuiteIdentifier struct {
	DataAsset DataAssetIdentifier
	Suite     string
}

func (k ExpectationSuiteIdentifier) Parts() []string {
	return append(k.DataAsset.Parts(), k.Suite)
}

func (k ExpectationSuiteIdentifier) String() string {
	return render(expectationSuiteType, k.Parts())
}

// ValidationResultIdentifier names the result of one validation run.
type ValidationResultIdentifier struct {
	ExpectationSuite ExpectationSuiteIdentifier
	RunID            string
}

func (k ValidationResultIdentifier) Parts() []string {
	return append(k.ExpectationSuite.Parts(), k.RunID)
}

func (k ValidationResultIdentifier) String() string {
	return render(validationResultType, k.Parts())
}
