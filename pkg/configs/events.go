package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled bool             `mapstructure:"enabled"` // 总开关
	Item    ItemEventsConfig `mapstructure:"item"`
}

// ItemEventsConfig 针对文档条目领域的事件开关。
type ItemEventsConfig struct {
	Stored   bool `mapstructure:"stored"`
	Updated  bool `mapstructure:"updated"`
	Deleted  bool `mapstructure:"deleted"`
	Moved    bool `mapstructure:"moved"`
	Accessed bool `mapstructure:"accessed"`
	Folder   bool `mapstructure:"folder"`
	Trash    bool `mapstructure:"trash"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 条目领域的事件：默认仅开启最小必要集，避免噪声过大
	v.SetDefault("events.item.stored", true)
	v.SetDefault("events.item.deleted", true)

	// 可选事件：默认关闭，按需开启
	v.SetDefault("events.item.updated", false)
	v.SetDefault("events.item.moved", false)
	v.SetDefault("events.item.accessed", false) // 访问事件量可能很大，默认关闭
	v.SetDefault("events.item.folder", false)
	v.SetDefault("events.item.trash", false)
}
