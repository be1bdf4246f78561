package services

// GSTRateOptions are the GST slabs suggested on each line item.
var GSTRateOptions = []float64{0, 5, 12, 18, 28}

// RoomTypeOptions are suggestions for the room type column; any text is
// accepted.
var RoomTypeOptions = []string{
	"Standard",
	"Deluxe",
	"Super Deluxe",
	"Premium",
	"Suite",
	"Family Room",
	"Dormitory",
	"Villa",
	"Cottage",
}

// IndianStates lists the states and union territories offered for Place of
// Supply.
var IndianStates = []string{
	"Andaman and Nicobar Islands",
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chandigarh",
	"Chhattisgarh",
	"Dadra and Nagar Haveli and Daman and Diu",
	"Delhi",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jammu and Kashmir",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Ladakh",
	"Lakshadweep",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Puducherry",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
}
