package cfg

type Cfg struct {
	// Notion API configuration
	NotionToken    string
	NotionVersion  string
	RequestTimeout int

	// Application configuration
	ViewsDir     string
	Port         string
	BaseUrl      string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
