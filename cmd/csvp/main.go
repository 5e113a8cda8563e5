// Command csvp parses delimiter-separated text files into typed rows.
//
// The column layout is given as a compact spec string or a TOML profile:
//
//	csvp print -f "id:int, name:string, joined:date" < people.csv
//	csvp load -p people.toml people.csv
package main

func main() {
	Execute()
}
