package main

import (
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/peopledb/bootstrap"
	"github.com/fulldump/peopledb/configuration"
)

var banner = `
 ____                   _      ____  ____
|  _ \ ___  ___  _ __  | | ___|  _ \| __ )
| |_) / _ \/ _ \| '_ \ | |/ _ \ | | |  _ \
|  __/  __/ (_) | |_) || |  __/ |_| | |_) |
|_|   \___|\___/| .__/ |_|\___|____/|____/
                |_|          version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		json.MarshalWrite(os.Stdout, c, jsontext.WithIndent("    "))
		fmt.Println()
	}

	start, stop, err := bootstrap.Bootstrap(&c)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
		os.Exit(-1)
	}

	err = start()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
		os.Exit(1)
	}
}
