package project

var (
	description = "The keyvault-lifecycle provisions Azure Key Vaults in a throwaway resource group and always cleans up after itself."
	gitSHA      = "n/a"
	name        = "keyvault-lifecycle"
	source      = "https://github.com/giantswarm/keyvault-lifecycle"
	version     = "0.1.0-dev"
)

func Description() string {
	return description
}

func GitSHA() string {
	return gitSHA
}

func Name() string {
	return name
}

func Source() string {
	return source
}

func Version() string {
	return version
}
