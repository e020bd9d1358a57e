// buddyctl inspects and exercises the buddykit allocator from the
// command line.
package main

func main() {
	execute()
}
