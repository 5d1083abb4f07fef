package azure

type Azure struct {
	ClientID        string
	ClientSecret    string
	EnvironmentName string
	ObjectID        string
	PartnerID       string
	SubscriptionID  string
	TenantID        string
}
