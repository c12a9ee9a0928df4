package seed

type Category struct {
	NameEN string
	NameAR string
	Slug   string
}

type Product struct {
	CategorySlug  string
	NameEN        string
	NameAR        string
	Code          string
	Weight        string
	DescriptionEN string
	DescriptionAR string
}

var Categories = []Category{
	{NameEN: "Chocolates", NameAR: "الشوكولاتة", Slug: "chocolates"},
	{NameEN: "Coffee", NameAR: "القهوة", Slug: "coffee"},
	{NameEN: "Flour", NameAR: "الدقيق", Slug: "flour"},
	{NameEN: "Sweets", NameAR: "الحلويات", Slug: "sweets"},
	{NameEN: "Frozen Meat", NameAR: "اللحوم المجمدة", Slug: "frozen-meat"},
	{NameEN: "Frozen Chicken", NameAR: "الدجاج المجمد", Slug: "frozen-chicken"},
	{NameEN: "Sugar", NameAR: "السكر", Slug: "sugar"},
	{NameEN: "Raw Materials", NameAR: "المواد الخام", Slug: "raw-materials"},
	{NameEN: "Creams & Fillings", NameAR: "الكريمات والحشوات", Slug: "creams-fillings"},
	{NameEN: "Beverages", NameAR: "المشروبات", Slug: "beverages"},
}

// Products are only inserted into an empty catalog. Entries whose category
// slug is unknown are skipped.
var Products = []Product{
	{
		CategorySlug:  "chocolates",
		NameEN:        "Dark Chocolate Couverture 70%",
		NameAR:        "شوكولاتة خام داكنة 70%",
		Code:          "CHOC-001",
		Weight:        "10 KG",
		DescriptionEN: "Premium dark chocolate drops for baking and molding.",
		DescriptionAR: "رقائق شوكولاتة داكنة فاخرة للخبز والتشكيل.",
	},
	{
		CategorySlug:  "raw-materials",
		NameEN:        "Almond Flour",
		NameAR:        "دقيق اللوز",
		Code:          "RAW-005",
		Weight:        "5 KG",
		DescriptionEN: "Finely ground blanched almond flour.",
		DescriptionAR: "دقيق لوز مقشر ومطحون ناعم.",
	},
	{
		CategorySlug:  "ice-cream-gelato",
		NameEN:        "Vanilla Gelato Base",
		NameAR:        "قاعدة جيلاتو فانيليا",
		Code:          "ICE-020",
		Weight:        "2 KG",
		DescriptionEN: "High quality base for vanilla gelato.",
		DescriptionAR: "قاعدة عالية الجودة لجيلاتو الفانيليا.",
	},
	{
		CategorySlug:  "coffee",
		NameEN:        "Premium Arabica Coffee Beans",
		NameAR:        "حبوب قهوة أرابيكا فاخرة",
		Code:          "COF-001",
		Weight:        "1 KG",
		DescriptionEN: "100% Arabica beans, medium roast.",
		DescriptionAR: "حبوب أرابيكا 100%، تحميص متوسط.",
	},
	{
		CategorySlug:  "flour",
		NameEN:        "All-Purpose Flour",
		NameAR:        "دقيق متعدد الاستخدامات",
		Code:          "FLR-101",
		Weight:        "50 KG",
		DescriptionEN: "High quality flour for all baking needs.",
		DescriptionAR: "دقيق عالي الجودة لجميع احتياجات الخبز.",
	},
	{
		CategorySlug:  "sweets",
		NameEN:        "Assorted Gummies",
		NameAR:        "تشكيلة جيلي",
		Code:          "SWT-005",
		Weight:        "5 KG",
		DescriptionEN: "Colorful fruit flavored gummy candies.",
		DescriptionAR: "حلوى جيلي بنكهات الفواكه الملونة.",
	},
	{
		CategorySlug:  "frozen-meat",
		NameEN:        "Premium Beef Tenderloin",
		NameAR:        "فيليه بقري فاخر",
		Code:          "MT-012",
		Weight:        "20 KG",
		DescriptionEN: "High quality frozen beef tenderloin.",
		DescriptionAR: "فيليه بقري مجمد عالي الجودة.",
	},
	{
		CategorySlug:  "frozen-chicken",
		NameEN:        "Whole Frozen Chicken 1000g",
		NameAR:        "دجاج مجمد كامل 1000 جم",
		Code:          "CHK-100",
		Weight:        "10 KG Box",
		DescriptionEN: "Grade A frozen whole chicken.",
		DescriptionAR: "دجاج كامل مجمد درجة أولى.",
	},
	{
		CategorySlug:  "sugar",
		NameEN:        "Fine White Sugar",
		NameAR:        "سكر أبيض ناعم",
		Code:          "SUG-001",
		Weight:        "50 KG",
		DescriptionEN: "Refined white sugar for baking and sweetening.",
		DescriptionAR: "سكر أبيض مكرر للخبز والتحلية.",
	},
}
