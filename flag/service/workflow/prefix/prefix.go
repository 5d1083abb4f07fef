package prefix

type Prefix struct {
	PrimaryVault   string
	ResourceGroup  string
	SecondaryVault string
}
