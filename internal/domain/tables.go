package domain

var Tables = []interface{}{
	// Inventory
	&Product{},
	&InventoryLog{},
	// Users
	&BotUser{},
	&UserActivity{},
}
