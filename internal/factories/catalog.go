package factories

var restaurants = []string{
	"Eastside Deli", "Oak Street Bistro", "Southside Pizza Lab",
	"Hillside Kitchen", "Triangle BBQ Co.", "Village Noodle Bar",
	"Roosevelt Oyster House", "Capital City Tacos", "GreenBite Cafe", "UrbanEats",
}

var cuisines = []string{"Deli", "Southern", "Italian", "New American", "BBQ", "Asian", "Seafood", "Mexican", "Indian", "Fusion"}

var menuItems = []string{
	"Chicken Salad Sandwich", "Biscuits & Gravy", "Margherita Pizza", "Eggplant Parmesan",
	"Veggie Grain Bowl", "Smoked Turkey", "Pad Thai", "Fish & Chips", "Veggie Burrito", "Seared Salmon",
}

var (
	wasteTypes      = []string{"Overproduction", "Spoilage", "Prep Trim", "Plate Waste", "Expired", "Damaged"}
	disposalMethods = []string{"Compost", "Trash", "Donation"}
	wasteReasons    = []string{"Low demand", "Inventory error", "Improper storage", "End of service", "Customer returned", "Batch cooked too much", "Shift change discard"}
	seatingTypes    = []string{"Indoor", "Outdoor", "Counter"}
	portionSizes    = []string{"small", "medium", "large"}
	portionOunces   = []int{8, 10, 12, 14, 16}
	zipCodes        = []int{27601, 27603, 27604, 27605, 27606, 27607, 27608, 27609, 27610}
)

var feedbackTexts = []string{
	"Excellent packaging and timely delivery.",
	"Food arrived cold and was late.",
	"Portion size was perfect.",
	"Too much salt but tasted good.",
	"Packaging sustainable and neat.",
	"Received wrong item.",
}
