// Command arenactl drives and inspects fixed-region free-list arenas.
package main

func main() {
	execute()
}
