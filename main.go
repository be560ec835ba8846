package main

import "github.com/chapterlens/outline-api/cmd"

// @title           Outline API
// @version         1.0.0
// @description     Timestamped outline generation for videos, with transcript scraping and snapshot captioning
// @contact.name    API Support
// @contact.url     https://github.com/chapterlens/outline-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
