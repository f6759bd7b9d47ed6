package palette

var registry = map[string]Palette{
	"crossinvest_navy_gold": with(base("crossinvest_navy_gold"), func(p *Palette) {
		p.Navy = "#24618E"
		p.ChartPrimary = "#24618E"
		p.ChartSecondary = "#3566BB"
		p.ChartBG = "#FFFFFF"
		p.Red = "#C0392B"
		p.Orange = "#D46A28"
		p.Gray = "#6C757D"
		p.LightGray = "#D5D8DC"
		p.SeriesCycle = []string{"#24618E", "#D46A28", "#2E865F", "#C0392B", "#5B9BD5", "#B8860B", "#6C757D", "#003B6F"}
	}),
	"corporate_blue": with(base("corporate_blue"), func(p *Palette) {
		p.Navy = "#1B365D"
		p.Gold = "#C5A55A"
		p.ChartPrimary = "#2C5F8A"
		p.ChartSecondary = "#4A90D9"
		p.Green = "#28A745"
		p.Red = "#DC3545"
	}),
	"minimal_bw": with(base("minimal_bw"), func(p *Palette) {
		p.Navy = "#1A1A1A"
		p.Gold = "#888888"
		p.ChartPrimary = "#333333"
		p.ChartSecondary = "#666666"
		p.Green = "#2D6A2D"
		p.Red = "#8B0000"
		p.ChartBG = "#FFFFFF"
	}),
	"crossinvest_dark": {
		Name: "crossinvest_dark", Navy: "#0D2137", Gold: "#F0B90B", White: "#FFFFFF",
		ChartPrimary: "#00D4FF", ChartSecondary: "#7B61FF", Green: "#00E676", Red: "#FF5252", Orange: "#FFB74D",
		BodyText: "#E8EDF3", Gray: "#8899AA", SourceColor: "#5A7B8D", LightGray: "#1E2D42",
		ChartBG: "#0F1B2D", FigBG: "#0A1628", SlideBG: "#0D1B2A",
		TitleColor: "#FFFFFF", CardBG: "#152238", CardBorder: "#1E3454",
		ExtraColors: []string{"#FF6EC7", "#00BFA5", "#FFCA28", "#448AFF", "#FF7043", "#CE93D8"},
		SeriesCycle: []string{"#00D4FF", "#FF5252", "#00E676", "#7B61FF", "#FFB74D", "#00BFA5", "#FF6EC7", "#448AFF"},
	},
	"jpm_gttm": {
		Name: "jpm_gttm", Navy: "#004B87", Gold: "#E8941A", White: "#FFFFFF",
		ChartPrimary: "#002D59", ChartSecondary: "#0078CF", Green: "#00875D", Red: "#E52135", Orange: "#C75300",
		BodyText: "#3A3F44", Gray: "#72777D", SourceColor: "#72777D", LightGray: "#D3D5D8",
		ChartBG: "#FFFFFF", FigBG: "#FFFFFF", SlideBG: "#FFFFFF",
		TitleColor: "#004B87", CardBG: "#F5F7F8", CardBorder: "#D3D5D8",
		ExtraColors: []string{"#1B7F9E", "#9ABDF5", "#A25BAD", "#C7DEFF"},
		SeriesCycle: []string{"#002D59", "#0078CF", "#1B7F9E", "#72777D", "#9ABDF5", "#00875D", "#C75300", "#A25BAD"},
	},
	"goldman_sachs": {
		Name: "goldman_sachs", Navy: "#00355F", Gold: "#7399C6", White: "#FFFFFF",
		ChartPrimary: "#00355F", ChartSecondary: "#7399C6", Green: "#2E8540", Red: "#C5283D", Orange: "#E69F00",
		BodyText: "#231F20", Gray: "#58575A", SourceColor: "#58575A", LightGray: "#E0E0E0",
		ChartBG: "#FFFFFF", FigBG: "#FFFFFF", SlideBG: "#FFFFFF",
		TitleColor: "#00355F", CardBG: "#F5F5F5", CardBorder: "#D0D0D0",
		ExtraColors: []string{"#ACD4F1", "#64A8F0", "#2178C4", "#7F90AC"},
		SeriesCycle: []string{"#00355F", "#7399C6", "#ACD4F1", "#64A8F0", "#2178C4", "#7F90AC", "#231F20", "#58575A"},
	},
	"indosuez": {
		Name: "indosuez", Navy: "#1B3764", Gold: "#C5A76B", White: "#FFFFFF",
		ChartPrimary: "#1B3764", ChartSecondary: "#4A7FB5", Green: "#2E865F", Red: "#722F37", Orange: "#D4AF37",
		BodyText: "#333333", Gray: "#6B6B6B", SourceColor: "#999999", LightGray: "#E8E4DF",
		ChartBG: "#FFFFFF", FigBG: "#FFFFFF", SlideBG: "#FFFFFF",
		TitleColor: "#1B3764", CardBG: "#F5F3F0", CardBorder: "#E8E4DF",
		ExtraColors: []string{"#0F2340", "#722F37", "#8C8C8C", "#D4AF37"},
		SeriesCycle: []string{"#1B3764", "#C5A76B", "#4A7FB5", "#722F37", "#0F2340", "#8C8C8C", "#D4AF37", "#333333"},
	},
	"blackrock_bii": {
		Name: "blackrock_bii", Navy: "#000000", Gold: "#FFCE00", White: "#FFFFFF",
		ChartPrimary: "#000000", ChartSecondary: "#FF4713", Green: "#00B050", Red: "#FF4713", Orange: "#FFC000",
		BodyText: "#333333", Gray: "#808080", SourceColor: "#808080", LightGray: "#E5E5E5",
		ChartBG: "#FFFFFF", FigBG: "#FFFFFF", SlideBG: "#FFFFFF",
		TitleColor: "#000000", CardBG: "#F4F1EB", CardBorder: "#E5E5E5",
		ExtraColors: []string{"#009688", "#F4F1EB", "#666666", "#FFCE00"},
		SeriesCycle: []string{"#000000", "#FF4713", "#00B050", "#FFC000", "#009688", "#808080", "#666666", "#333333"},
	},
	// Okabe-Ito colorblind-safe categorical set.
	"okabe_ito": {
		Name: "okabe_ito", Navy: "#000000", Gold: "#E69F00", White: "#FFFFFF",
		ChartPrimary: "#0072B2", ChartSecondary: "#56B4E9", Green: "#009E73", Red: "#D55E00", Orange: "#E69F00",
		BodyText: "#1A1A2E", Gray: "#666666", SourceColor: "#999999", LightGray: "#E0E0E0",
		ChartBG: "#FFFFFF", FigBG: "#FFFFFF", SlideBG: "#FFFFFF",
		TitleColor: "#1A1A2E", CardBG: "#F5F5F5", CardBorder: "#E0E0E0",
		ExtraColors: []string{"#F0E442", "#CC79A7", "#000000", "#56B4E9"},
		SeriesCycle: []string{"#E69F00", "#56B4E9", "#009E73", "#F0E442", "#0072B2", "#D55E00", "#CC79A7", "#000000"},
	},
	"blue_orange_diverging": {
		Name: "blue_orange_diverging", Navy: "#2166AC", Gold: "#F4A582", White: "#FFFFFF",
		ChartPrimary: "#2166AC", ChartSecondary: "#4393C3", Green: "#4DAF4A", Red: "#B2182B", Orange: "#E66101",
		BodyText: "#1A1A2E", Gray: "#666666", SourceColor: "#999999", LightGray: "#E0E0E0",
		ChartBG: "#FFFFFF", FigBG: "#FFFFFF", SlideBG: "#FFFFFF",
		TitleColor: "#1A1A2E", CardBG: "#F7F7F7", CardBorder: "#D1D1D1",
		ExtraColors: []string{"#92C5DE", "#D6604D", "#F4A582", "#FDDBC7"},
		SeriesCycle: []string{"#2166AC", "#4393C3", "#92C5DE", "#F7F7F7", "#FDDBC7", "#F4A582", "#D6604D", "#B2182B"},
	},
	"morgan_stanley": {
		Name: "morgan_stanley", Navy: "#00263A", Gold: "#C48A00", White: "#FFFFFF",
		ChartPrimary: "#003C71", ChartSecondary: "#1A6BA8", Green: "#2E8540", Red: "#C5283D", Orange: "#C48A00",
		BodyText: "#333333", Gray: "#6A7B8A", SourceColor: "#6A7B8A", LightGray: "#E5E5E5",
		ChartBG: "#FFFFFF", FigBG: "#FFFFFF", SlideBG: "#FFFFFF",
		TitleColor: "#00263A", CardBG: "#F5F5F5", CardBorder: "#E0E0E0",
		ExtraColors: []string{"#4D94C8", "#80B8DE", "#D1E4F1", "#BFBFBF"},
		SeriesCycle: []string{"#003C71", "#1A6BA8", "#4D94C8", "#80B8DE", "#D1E4F1", "#6A7B8A", "#C5283D", "#C48A00"},
	},
	"swiss_institutional": with(base("swiss_institutional"), func(p *Palette) {
		p.Navy = "#1F2A44"
		p.Gold = "#A88B4A"
		p.ChartPrimary = "#003366"
		p.ChartSecondary = "#6E8CA0"
		p.Green = "#3B7D4F"
		p.Red = "#B03A2E"
		p.ChartBG = "#FFFFFF"
		p.SlideBG = "#F5F5F5"
		p.TitleColor = "#1F2A44"
		p.CardBG = "#FFFFFF"
		p.CardBorder = "#D9D9D9"
		p.SeriesCycle = []string{"#003366", "#6E8CA0", "#A88B4A", "#3B7D4F", "#B03A2E", "#8C8C8C", "#1F2A44", "#C9B37E"}
	}),
}

func with(p Palette, edit func(*Palette)) Palette {
	edit(&p)
	return p
}
