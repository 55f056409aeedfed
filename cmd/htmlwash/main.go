// Package main provides the htmlwash command.
//
// htmlwash strips unwanted markup from HTML. It runs either as an HTTP
// service or offline over files and standard input.
//
// Usage:
//
//	htmlwash serve --port 3001
//	htmlwash wash --preset pub-w page.html
//	cat page.html | htmlwash wash --mode markdown
//
// See --help for all available options.
package main

func main() {
	Execute()
}
