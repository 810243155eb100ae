package fields

// Name is a logical field an export column can be resolved to.
type Name string

const (
	Campaign    Name = "campaign"
	AdSet       Name = "adSet"
	Spend       Name = "spend"
	Clicks      Name = "clicks"
	Results     Name = "results"
	Impressions Name = "impressions"
	Country     Name = "country"
	Currency    Name = "currency"
	Date        Name = "date"
)

// Names lists every logical field in reporting order.
var Names = []Name{Campaign, AdSet, Spend, Clicks, Results, Impressions, Country, Currency, Date}

// Table holds the ordered alias list of each logical field. Earlier aliases
// win, so precise names come before generic ones.
type Table map[Name][]string

// DefaultAliases covers the Meta, Google, TikTok and Snapchat exports in
// English, French, Spanish and Portuguese.
var DefaultAliases = Table{
	Campaign: {
		"campaign name", "nom de la campagne", "nom campagne", "nombre de la campana",
		"nome da campanha", "campaign", "campagne", "campana", "campanha",
	},
	AdSet: {
		"ad set name", "nom de l ensemble de publicites", "ensemble de publicites",
		"nom du groupe d annonces", "groupe d annonces", "nombre del conjunto de anuncios",
		"conjunto de anuncios", "nome do conjunto de anuncios", "ad group name", "ad group",
		"ad set", "adset", "adgroup",
	},
	Spend: {
		"amount spent", "montant depense", "importe gastado", "valor usado", "total spend",
		"spend", "spent", "depenses", "depense", "cout total", "total cost", "cost", "cout",
		"gasto", "montant",
	},
	Clicks: {
		"link clicks", "clics sur un lien", "clics sur le lien", "clics en el enlace",
		"cliques no link", "clicks", "clics", "cliques",
	},
	Results: {
		"purchases", "achats", "compras", "results", "resultats", "resultados",
		"conversions", "conversiones", "conversoes", "leads", "prospects", "ventes", "sales",
	},
	Impressions: {
		"impressions", "impresiones", "impressoes", "impr",
	},
	Country: {
		"country", "pays", "pais", "region",
	},
	Currency: {
		"currency code", "currency", "devise", "monnaie", "moneda", "moeda",
	},
	Date: {
		"reporting starts", "debut des rapports", "inicio del informe", "date", "day", "jour",
		"fecha",
	},
}
