package deploy

const (
	DefaultModuleName = "NebulaXModule"

	ContractNebXToken = "NebXToken"
	ContractNebulaX   = "NebulaX"
)

// BuildNebulaX declares the NebulaX deployment: the NebXToken token first, then the
// NebulaX contract that takes the token address as its only constructor argument.
func BuildNebulaX(name string) *Unit {
	return NewModule(name, func(m *ModuleBuilder) map[string]Future {
		nebXToken := m.Contract(ContractNebXToken)
		nebulaX := m.Contract(ContractNebulaX, nebXToken)

		return map[string]Future{
			"nebXToken": nebXToken,
			"nebulaX":   nebulaX,
		}
	})
}
