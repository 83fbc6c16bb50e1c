package models

// ModelTypeRegistry maps model names to their zero values.
var ModelTypeRegistry = map[string]interface{}{
	"User":            User{},
	"UserProfile":     UserProfile{},
	"LegalAcceptance": LegalAcceptance{},
	"Tenant":          Tenant{},
	"RentCharge":      RentCharge{},
	"UtilityCharge":   UtilityCharge{},
	"LedgerEntry":     LedgerEntry{},
}

// Registry returns pointers to every model in creation order.
func Registry() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&LegalAcceptance{},
		&Tenant{},
		&RentCharge{},
		&UtilityCharge{},
		&LedgerEntry{},
	}
}
