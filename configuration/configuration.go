package configuration

import "github.com/fulldump/peopledb/store"

const (
	ModeConsole = "console"
	ModeNetwork = "network"
)

type Configuration struct {
	Mode       string `json:"mode" usage:"front end: console or network"`
	Addr       string `json:"addr" usage:"TCP address for network mode"`
	Dir        string `json:"dir" usage:"base directory for relative file names"`
	Cipher     bool   `json:"cipher" usage:"obfuscate names in saved files"`
	MaxPages   int    `json:"max_pages" usage:"maximum number of 32 record pages"`
	LogLevel   string `json:"log_level" usage:"debug, info, warn or error"`
	Version    bool   `json:"version" usage:"show version and exit"`
	ShowBanner bool   `json:"show_banner" usage:"show big banner"`
	ShowConfig bool   `json:"show_config" usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		Mode:       ModeConsole,
		Addr:       "127.0.0.1:8080",
		Dir:        ".",
		Cipher:     true,
		MaxPages:   store.DefaultMaxPages,
		LogLevel:   "warn",
		ShowBanner: false,
		ShowConfig: false,
	}
}
