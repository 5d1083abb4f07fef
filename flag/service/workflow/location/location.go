package location

type Location struct {
	PrimaryVault   string
	ResourceGroup  string
	SecondaryVault string
}
