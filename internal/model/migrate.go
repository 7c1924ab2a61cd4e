package model

// allModels lists every table in dependency order.
var allModels = []interface{}{
	&Quest{},
	&Task{},
	&Completion{},
	&TaskCompletion{},
}

func AllModels() []interface{} {
	return allModels
}
