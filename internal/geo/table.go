package geo

// DivisionSpec is one row of the static hierarchy table.
type DivisionSpec struct {
	Name      string
	Districts []DistrictSpec
}

// DistrictSpec lists the upazilas of one district. Sadar upazilas carry the
// district name so that every upazila name inside a district is unique.
type DistrictSpec struct {
	Name     string
	Upazilas []string
}

// bangladesh is the administrative hierarchy the default index is built from:
// 8 divisions, 64 districts and their upazilas. City thanas are not listed.
var bangladesh = []DivisionSpec{
	{Name: "Barishal", Districts: []DistrictSpec{
		{Name: "Barguna", Upazilas: []string{"Amtali", "Bamna", "Barguna Sadar", "Betagi", "Patharghata", "Taltali"}},
		{Name: "Barishal", Upazilas: []string{"Agailjhara", "Babuganj", "Bakerganj", "Banaripara", "Barishal Sadar", "Gaurnadi", "Hizla", "Mehendiganj", "Muladi", "Wazirpur"}},
		{Name: "Bhola", Upazilas: []string{"Bhola Sadar", "Burhanuddin", "Char Fasson", "Daulatkhan", "Lalmohan", "Manpura", "Tazumuddin"}},
		{Name: "Jhalokati", Upazilas: []string{"Jhalokati Sadar", "Kathalia", "Nalchity", "Rajapur"}},
		{Name: "Patuakhali", Upazilas: []string{"Bauphal", "Dashmina", "Dumki", "Galachipa", "Kalapara", "Mirzaganj", "Patuakhali Sadar", "Rangabali"}},
		{Name: "Pirojpur", Upazilas: []string{"Bhandaria", "Indurkani", "Kawkhali", "Mathbaria", "Nazirpur", "Nesarabad", "Pirojpur Sadar"}},
	}},
	{Name: "Chattogram", Districts: []DistrictSpec{
		{Name: "Bandarban", Upazilas: []string{"Ali Kadam", "Bandarban Sadar", "Lama", "Naikhongchhari", "Rowangchhari", "Ruma", "Thanchi"}},
		{Name: "Brahmanbaria", Upazilas: []string{"Akhaura", "Ashuganj", "Bancharampur", "Bijoynagar", "Brahmanbaria Sadar", "Kasba", "Nabinagar", "Nasirnagar", "Sarail"}},
		{Name: "Chandpur", Upazilas: []string{"Chandpur Sadar", "Faridganj", "Haimchar", "Haziganj", "Kachua", "Matlab Dakshin", "Matlab Uttar", "Shahrasti"}},
		{Name: "Chattogram", Upazilas: []string{"Anwara", "Banshkhali", "Boalkhali", "Chandanaish", "Fatikchhari", "Hathazari", "Karnaphuli", "Lohagara", "Mirsharai", "Patiya", "Rangunia", "Raozan", "Sandwip", "Satkania", "Sitakunda"}},
		{Name: "Cox's Bazar", Upazilas: []string{"Chakaria", "Cox's Bazar Sadar", "Eidgaon", "Kutubdia", "Maheshkhali", "Pekua", "Ramu", "Teknaf", "Ukhia"}},
		{Name: "Cumilla", Upazilas: []string{"Barura", "Brahmanpara", "Burichang", "Chandina", "Chauddagram", "Cumilla Adarsha Sadar", "Cumilla Sadar Dakshin", "Daudkandi", "Debidwar", "Homna", "Laksam", "Lalmai", "Meghna", "Monohargonj", "Muradnagar", "Nangalkot", "Titas"}},
		{Name: "Feni", Upazilas: []string{"Chhagalnaiya", "Daganbhuiyan", "Feni Sadar", "Fulgazi", "Parshuram", "Sonagazi"}},
		{Name: "Khagrachhari", Upazilas: []string{"Dighinala", "Guimara", "Khagrachhari Sadar", "Lakshmichhari", "Mahalchhari", "Manikchhari", "Matiranga", "Panchhari", "Ramgarh"}},
		{Name: "Lakshmipur", Upazilas: []string{"Kamalnagar", "Lakshmipur Sadar", "Raipur", "Ramganj", "Ramgati"}},
		{Name: "Noakhali", Upazilas: []string{"Begumganj", "Chatkhil", "Companiganj", "Hatiya", "Kabirhat", "Noakhali Sadar", "Senbagh", "Sonaimuri", "Subarnachar"}},
		{Name: "Rangamati", Upazilas: []string{"Baghaichhari", "Barkal", "Belaichhari", "Juraichhari", "Kaptai", "Kawkhali", "Langadu", "Naniarchar", "Rajasthali", "Rangamati Sadar"}},
	}},
	{Name: "Dhaka", Districts: []DistrictSpec{
		{Name: "Dhaka", Upazilas: []string{"Dhamrai", "Dohar", "Keraniganj", "Nawabganj", "Savar"}},
		{Name: "Faridpur", Upazilas: []string{"Alfadanga", "Bhanga", "Boalmari", "Charbhadrasan", "Faridpur Sadar", "Madhukhali", "Nagarkanda", "Sadarpur", "Saltha"}},
		{Name: "Gazipur", Upazilas: []string{"Gazipur Sadar", "Kaliakair", "Kaliganj", "Kapasia", "Sreepur"}},
		{Name: "Gopalganj", Upazilas: []string{"Gopalganj Sadar", "Kashiani", "Kotalipara", "Muksudpur", "Tungipara"}},
		{Name: "Kishoreganj", Upazilas: []string{"Austagram", "Bajitpur", "Bhairab", "Hossainpur", "Itna", "Karimganj", "Katiadi", "Kishoreganj Sadar", "Kuliarchar", "Mithamain", "Nikli", "Pakundia", "Tarail"}},
		{Name: "Madaripur", Upazilas: []string{"Dasar", "Kalkini", "Madaripur Sadar", "Rajoir", "Shibchar"}},
		{Name: "Manikganj", Upazilas: []string{"Daulatpur", "Ghior", "Harirampur", "Manikganj Sadar", "Saturia", "Shivalaya", "Singair"}},
		{Name: "Munshiganj", Upazilas: []string{"Gazaria", "Lohajang", "Munshiganj Sadar", "Sirajdikhan", "Sreenagar", "Tongibari"}},
		{Name: "Narayanganj", Upazilas: []string{"Araihazar", "Bandar", "Narayanganj Sadar", "Rupganj", "Sonargaon"}},
		{Name: "Narsingdi", Upazilas: []string{"Belabo", "Monohardi", "Narsingdi Sadar", "Palash", "Raipura", "Shibpur"}},
		{Name: "Rajbari", Upazilas: []string{"Baliakandi", "Goalandaghat", "Kalukhali", "Pangsha", "Rajbari Sadar"}},
		{Name: "Shariatpur", Upazilas: []string{"Bhedarganj", "Damudya", "Gosairhat", "Naria", "Shariatpur Sadar", "Zajira"}},
		{Name: "Tangail", Upazilas: []string{"Basail", "Bhuapur", "Delduar", "Dhanbari", "Ghatail", "Gopalpur", "Kalihati", "Madhupur", "Mirzapur", "Nagarpur", "Sakhipur", "Tangail Sadar"}},
	}},
	{Name: "Khulna", Districts: []DistrictSpec{
		{Name: "Bagerhat", Upazilas: []string{"Bagerhat Sadar", "Chitalmari", "Fakirhat", "Kachua", "Mollahat", "Mongla", "Morrelganj", "Rampal", "Sarankhola"}},
		{Name: "Chuadanga", Upazilas: []string{"Alamdanga", "Chuadanga Sadar", "Damurhuda", "Jibannagar"}},
		{Name: "Jashore", Upazilas: []string{"Abhaynagar", "Bagherpara", "Chaugachha", "Jashore Sadar", "Jhikargachha", "Keshabpur", "Manirampur", "Sharsha"}},
		{Name: "Jhenaidah", Upazilas: []string{"Harinakunda", "Jhenaidah Sadar", "Kaliganj", "Kotchandpur", "Maheshpur", "Shailkupa"}},
		{Name: "Khulna", Upazilas: []string{"Batiaghata", "Dacope", "Dighalia", "Dumuria", "Koyra", "Paikgachha", "Phultala", "Rupsa", "Terokhada"}},
		{Name: "Kushtia", Upazilas: []string{"Bheramara", "Daulatpur", "Khoksa", "Kumarkhali", "Kushtia Sadar", "Mirpur"}},
		{Name: "Magura", Upazilas: []string{"Magura Sadar", "Mohammadpur", "Shalikha", "Sreepur"}},
		{Name: "Meherpur", Upazilas: []string{"Gangni", "Meherpur Sadar", "Mujibnagar"}},
		{Name: "Narail", Upazilas: []string{"Kalia", "Lohagara", "Narail Sadar"}},
		{Name: "Satkhira", Upazilas: []string{"Assasuni", "Debhata", "Kalaroa", "Kaliganj", "Satkhira Sadar", "Shyamnagar", "Tala"}},
	}},
	{Name: "Mymensingh", Districts: []DistrictSpec{
		{Name: "Jamalpur", Upazilas: []string{"Bakshiganj", "Dewanganj", "Islampur", "Jamalpur Sadar", "Madarganj", "Melandaha", "Sarishabari"}},
		{Name: "Mymensingh", Upazilas: []string{"Bhaluka", "Dhobaura", "Fulbaria", "Gaffargaon", "Gauripur", "Haluaghat", "Ishwarganj", "Muktagachha", "Mymensingh Sadar", "Nandail", "Phulpur", "Tara Khanda", "Trishal"}},
		{Name: "Netrokona", Upazilas: []string{"Atpara", "Barhatta", "Durgapur", "Kalmakanda", "Kendua", "Khaliajuri", "Madan", "Mohanganj", "Netrokona Sadar", "Purbadhala"}},
		{Name: "Sherpur", Upazilas: []string{"Jhenaigati", "Nakla", "Nalitabari", "Sherpur Sadar", "Sreebardi"}},
	}},
	{Name: "Rajshahi", Districts: []DistrictSpec{
		{Name: "Bogura", Upazilas: []string{"Adamdighi", "Bogura Sadar", "Dhunat", "Dhupchanchia", "Gabtali", "Kahaloo", "Nandigram", "Sariakandi", "Shajahanpur", "Sherpur", "Shibganj", "Sonatala"}},
		{Name: "Chapai Nawabganj", Upazilas: []string{"Bholahat", "Chapai Nawabganj Sadar", "Gomastapur", "Nachole", "Shibganj"}},
		{Name: "Joypurhat", Upazilas: []string{"Akkelpur", "Joypurhat Sadar", "Kalai", "Khetlal", "Panchbibi"}},
		{Name: "Naogaon", Upazilas: []string{"Atrai", "Badalgachhi", "Dhamoirhat", "Manda", "Mohadevpur", "Naogaon Sadar", "Niamatpur", "Patnitala", "Porsha", "Raninagar", "Sapahar"}},
		{Name: "Natore", Upazilas: []string{"Bagatipara", "Baraigram", "Gurudaspur", "Lalpur", "Naldanga", "Natore Sadar", "Singra"}},
		{Name: "Pabna", Upazilas: []string{"Atgharia", "Bera", "Bhangura", "Chatmohar", "Faridpur", "Ishwardi", "Pabna Sadar", "Santhia", "Sujanagar"}},
		{Name: "Rajshahi", Upazilas: []string{"Bagha", "Bagmara", "Charghat", "Durgapur", "Godagari", "Mohanpur", "Paba", "Puthia", "Tanore"}},
		{Name: "Sirajganj", Upazilas: []string{"Belkuchi", "Chauhali", "Kamarkhanda", "Kazipur", "Raiganj", "Shahjadpur", "Sirajganj Sadar", "Tarash", "Ullahpara"}},
	}},
	{Name: "Rangpur", Districts: []DistrictSpec{
		{Name: "Dinajpur", Upazilas: []string{"Birampur", "Birganj", "Biral", "Bochaganj", "Chirirbandar", "Dinajpur Sadar", "Fulbari", "Ghoraghat", "Hakimpur", "Kaharole", "Khansama", "Nawabganj", "Parbatipur"}},
		{Name: "Gaibandha", Upazilas: []string{"Fulchhari", "Gaibandha Sadar", "Gobindaganj", "Palashbari", "Sadullapur", "Saghata", "Sundarganj"}},
		{Name: "Kurigram", Upazilas: []string{"Bhurungamari", "Char Rajibpur", "Chilmari", "Kurigram Sadar", "Nageshwari", "Phulbari", "Rajarhat", "Raumari", "Ulipur"}},
		{Name: "Lalmonirhat", Upazilas: []string{"Aditmari", "Hatibandha", "Kaliganj", "Lalmonirhat Sadar", "Patgram"}},
		{Name: "Nilphamari", Upazilas: []string{"Dimla", "Domar", "Jaldhaka", "Kishoreganj", "Nilphamari Sadar", "Saidpur"}},
		{Name: "Panchagarh", Upazilas: []string{"Atwari", "Boda", "Debiganj", "Panchagarh Sadar", "Tetulia"}},
		{Name: "Rangpur", Upazilas: []string{"Badarganj", "Gangachara", "Kaunia", "Mithapukur", "Pirgachha", "Pirganj", "Rangpur Sadar", "Taraganj"}},
		{Name: "Thakurgaon", Upazilas: []string{"Baliadangi", "Haripur", "Pirganj", "Ranisankail", "Thakurgaon Sadar"}},
	}},
	{Name: "Sylhet", Districts: []DistrictSpec{
		{Name: "Habiganj", Upazilas: []string{"Ajmiriganj", "Bahubal", "Baniachong", "Chunarughat", "Habiganj Sadar", "Lakhai", "Madhabpur", "Nabiganj", "Shaistaganj"}},
		{Name: "Moulvibazar", Upazilas: []string{"Barlekha", "Juri", "Kamalganj", "Kulaura", "Moulvibazar Sadar", "Rajnagar", "Sreemangal"}},
		{Name: "Sunamganj", Upazilas: []string{"Bishwambharpur", "Chhatak", "Derai", "Dharmapasha", "Dowarabazar", "Jagannathpur", "Jamalganj", "Madhyanagar", "Shalla", "Shantiganj", "Sunamganj Sadar", "Tahirpur"}},
		{Name: "Sylhet", Upazilas: []string{"Balaganj", "Beanibazar", "Bishwanath", "Companiganj", "Dakshin Surma", "Fenchuganj", "Golapganj", "Gowainghat", "Jaintiapur", "Kanaighat", "Osmani Nagar", "Sylhet Sadar", "Zakiganj"}},
	}},
}

// legacyNames maps older romanizations still present in donor records to the
// names used in the table. Keys and values are compared after normalization.
var legacyNames = map[string]string{
	"Barisal":         "Barishal",
	"Barisal Sadar":   "Barishal Sadar",
	"Chittagong":      "Chattogram",
	"Comilla":         "Cumilla",
	"Comilla Sadar":   "Cumilla Adarsha Sadar",
	"Jessore":         "Jashore",
	"Jessore Sadar":   "Jashore Sadar",
	"Bogra":           "Bogura",
	"Bogra Sadar":     "Bogura Sadar",
	"Nawabganj Sadar": "Chapai Nawabganj Sadar",
	"Chapainawabganj": "Chapai Nawabganj",
	"Jhalakathi":      "Jhalokati",
	"Jhalokathi":      "Jhalokati",
	"Maulvibazar":     "Moulvibazar",
	"Moulvi Bazar":    "Moulvibazar",
	"Netrakona":       "Netrokona",
	"Khagrachari":     "Khagrachhari",
	"Laxmipur":        "Lakshmipur",
	"Lakhsmipur":      "Lakshmipur",
	"Narshingdi":      "Narsingdi",
	"Munshigonj":      "Munshiganj",
	"Kishorganj":      "Kishoreganj",
	"Srimangal":       "Sreemangal",
	"Ishurdi":         "Ishwardi",
	"Sirajgonj":       "Sirajganj",
	"Gopalgonj":       "Gopalganj",
	"Habigonj":        "Habiganj",
	"Sunamgonj":       "Sunamganj",
}
