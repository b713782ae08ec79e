package gridref_test

import (
	"fmt"

	"github.com/tzneal/gridref"
)

func ExampleLatLon_ToUTM() {
	utm, _ := gridref.LatLon{Lat: 48.8582, Lon: 2.2945}.ToUTM()
	fmt.Println(utm)
	// Output: 31 N 448252 5411933
}

func ExampleLatLon_ToMGRS() {
	mgrs, _ := gridref.LatLon{Lat: 0, Lon: 0}.ToMGRS(5)
	fmt.Println(mgrs.Compact())
	// Output: 31NAA6602100000
}

func ExampleParseMGRS() {
	mgrs, _ := gridref.ParseMGRS("31U DQ 48251 11932")
	geo, _ := mgrs.ToLatLon()
	fmt.Printf("%.4f %.4f\n", geo.Lat, geo.Lon)
	fmt.Println(mgrs)
	// Output:
	// 48.8582 2.2945
	// 31U DQ 48251 11932
}

func ExampleParseUTM() {
	utm, _ := gridref.ParseUTM("31 N 448251.795 5411932.678", gridref.WGS84)
	geo, _ := utm.ToLatLon()
	fmt.Println(geo)
	// Output: 48.858200, 2.294500
}
