package logging

const (
	FieldComponent = "component"

	FieldDuration = "duration"
	FieldUrl      = "url"
	FieldPath     = "path"

	FieldNetwork = "network"
	FieldChainId = "chainId"
	FieldAccount = "account"

	FieldModule          = "module"
	FieldFuture          = "future"
	FieldContractAddress = "contractAddress"
	FieldDependencies    = "dependencies"
	FieldCount           = "count"

	FieldCompilerVersion = "compilerVersion"
	FieldOptimizerRuns   = "optimizerRuns"
)
