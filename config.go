package artikel

import "github.com/restatolahdata/go-artikel/internal/runtimeconfig"

var (
	ErrContentDirRequired         = runtimeconfig.ErrContentDirRequired
	ErrDocumentNameRequired       = runtimeconfig.ErrDocumentNameRequired
	ErrSiteBaseURLRequired        = runtimeconfig.ErrSiteBaseURLRequired
	ErrSearchLimitInvalid         = runtimeconfig.ErrSearchLimitInvalid
	ErrRelatedLimitInvalid        = runtimeconfig.ErrRelatedLimitInvalid
	ErrTOCLevelsInvalid           = runtimeconfig.ErrTOCLevelsInvalid
	ErrWatchRequiresSnapshotCache = runtimeconfig.ErrWatchRequiresSnapshotCache
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrHTTPAddrRequired           = runtimeconfig.ErrHTTPAddrRequired
	ErrFeedItemsInvalid           = runtimeconfig.ErrFeedItemsInvalid
)

type (
	Config        = runtimeconfig.Config
	ContentConfig = runtimeconfig.ContentConfig
	SiteConfig    = runtimeconfig.SiteConfig
	SearchConfig  = runtimeconfig.SearchConfig
	TOCConfig     = runtimeconfig.TOCConfig
	RelatedConfig = runtimeconfig.RelatedConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file on top of DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
