// Package main is the entry point for the superheroes API.
//
//	@title			Superheroes API
//	@version		1.0
//	@description	CRUD service for heroes, powers and the strengths linking them.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:5555
//	@BasePath		/
package main

func main() {
	Execute()
}
