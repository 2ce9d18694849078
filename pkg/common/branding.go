package common

import (
	"fmt"
	"os"
)

func PrintBanner(version string) {
	banner := fmt.Sprintf(`
888
888
888
88888b.  888  888 88888b.   .d88b.  888d888      88888b.d88b.   .d8888b 88888b.
888 "88b 888  888 888 "88b d8P  Y8b 888P"        888 "888 "88b d88P"    888 "88b
888  888 888  888 888  888 88888888 888   888888 888  888  888 888      888  888
888  888 Y88b 888 888 d88P Y8b.     888          888  888  888 Y88b.    888 d88P
888  888  "Y88888 88888P"   "Y8888  888          888  888  888  "Y8888P 88888P"
              888 888                                                   888
         Y8b d88P 888                                                   888
          "Y88P"  888                                                   888

hyper-mcp %s
Plugin-powered MCP runtime
`, version)

	fmt.Fprint(os.Stderr, banner)
}
