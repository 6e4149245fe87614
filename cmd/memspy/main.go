// Command memspy prints the allocator calls made by the vector, list and sso
// containers while they run a short scenario.
//
//	memspy vector --n 10
//	memspy string --log-level debug
//	memspy list --metrics
package main

func main() {
	execute()
}
