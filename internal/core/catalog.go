package core

// DefaultColor is applied when a category carries no display color.
const DefaultColor = "#4a6fa5"

// DefaultIcon is used when a category's icon key is absent.
const DefaultIcon = "other"

// iconCatalog is the fixed set of icon keys the UI layer knows how to
// render. Keys outside this set are rejected at validation time.
var iconCatalog = map[string]struct{}{
	"wallet": {}, "salary": {}, "gift": {}, "investment": {},
	"food": {}, "groceries": {}, "restaurant": {}, "cafe": {},
	"transport": {}, "taxi": {}, "car": {},
	"home": {}, "rent": {}, "utilities": {}, "phone": {}, "internet": {},
	"entertainment": {}, "movie": {}, "game": {}, "sport": {},
	"health": {}, "doctor": {},
	"education": {}, "travel": {}, "clothing": {}, "beauty": {},
	"gift_expense": {}, "charity": {}, "pet": {}, "child": {},
	"other": {},
	"money": {}, "work": {}, "trending_up": {}, "shopping_cart": {},
	"directions_car": {}, "power": {}, "favorite": {}, "school": {},
}

// ValidIcon reports whether the key belongs to the icon catalog.
func ValidIcon(key string) bool {
	_, ok := iconCatalog[key]
	return ok
}

// StarterCategories is the fixed set created once when an account is
// registered: 3 income and 7 expense categories.
func StarterCategories(userID int64) []Category {
	return []Category{
		{Name: "Зарплата", Type: Income, Color: "#4caf50", Icon: "money", UserID: userID},
		{Name: "Фриланс", Type: Income, Color: "#2196f3", Icon: "work", UserID: userID},
		{Name: "Инвестиции", Type: Income, Color: "#9c27b0", Icon: "trending_up", UserID: userID},
		{Name: "Продукты", Type: Expense, Color: "#f44336", Icon: "shopping_cart", UserID: userID},
		{Name: "Аренда", Type: Expense, Color: "#ff9800", Icon: "home", UserID: userID},
		{Name: "Развлечения", Type: Expense, Color: "#58365e", Icon: "movie", UserID: userID},
		{Name: "Транспорт", Type: Expense, Color: "#607d8b", Icon: "directions_car", UserID: userID},
		{Name: "Коммунальные услуги", Type: Expense, Color: "#795548", Icon: "power", UserID: userID},
		{Name: "Здоровье", Type: Expense, Color: "#e91e63", Icon: "favorite", UserID: userID},
		{Name: "Образование", Type: Expense, Color: "#3f51b5", Icon: "school", UserID: userID},
	}
}
