package acid

import "encoding/base64"

// coherenceB64 packs the 21*21*21 trivector coherence relation s_aryCOHERENCE
// from the reference engine as one bit per (a,b,c) triple, a outermost,
// c innermost, in AcidType order. Generated once from the reference data;
// see DESIGN.md for provenance.
const coherenceB64 = 	"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAgH/A9w/4/gHfPwD7B2D/" +
	"AOAfAPwDAAAAAAAAAAAAAAAAAAAAAAAAABwAvgPAdwD4PgDfB+ADAAD/gO8f8P0Dvn8A9g/A/gHAPwD4BwAAAAAAAAAAAAAA" +
	"AAAAAAAAAAA4AHwHgO8A8H0Avg/ABwAA/gHfP+D7B3z/AOwfgP0DgH8A8A8AAAAAAAAAAAAAAAAAAAAAAAAAcAD4DgDfAeD7" +
	"AHwfgA8AAPwDsH8A9g/A/gfY/wD7HwD/A+B/AOAPAPwBAAAAAAAAAAAAAAAAAAAAAAAAAAAA8AHAPgAYAAD4B2D/AOwfgP0P" +
	"sP8B9j8A/gfA/wDAHwD4AwAAAAAAAAAAAAAAAAAAAAAAAAAAAOADgH0AMAAA8A8A/gHAPwD4HwD/A+D/A/x/gP8PgP8B8D8A" +
	"+AcA/wDgHwAAAAAAAAAAAAAAAAAAAAAAAAAAAOAfAPwDgH8A8D8A/gfA/wf4/wD/HwD/A+B/APAPAP4BwD8AAAAAAAAAAAAA" +
	"AAAAAAAAAAAAAADAPwD4BwD/AOB/APwPgP8P8P8B/j8A/gfA/wDgHwD8A4B/AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA" +
	"AAAA/gDAHwD4HwD/A+B/APw/gP8HwP8A+B8A/wMAfwDgDwAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAPwBgD8A8D8A/gfA/wD4" +
	"fwD/D4D/AfA/AP4HAP4AwB8AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAIB/APAPAP4BwP8A+B8A/x/g/wP8fwD8D4D/" +
	"AcA/APgHAP8AAAAAAAAAAAAAAAAAAAAAAAAAAAAA/wDgHwD8A4D/AfA/AP4/wP8H+P8A+B8A/wOAfwDwDwD+AQAAAAAAAAAA" +
	"AAAAAAAAAAAAAAAAAP4BwD8A+AcA/wPgfwD8f4D/D/D/AfA/AP4HAP8A4B8A/AMAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA" +
	"AAAAAPAHAP4AwP8A+B8A/wPg/wH8PwD+B8D/APgfAPgDAH8AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAADgDwD8AYD/AfA/AP4H" +
	"wP8D+H8A/A+A/wHwPwDwBwD+AADAAeA7AHwHgA8AAAAAAAAAAAAAAAAAAAAAAAAA/AOAfwDwDwD+B8D/DvjfAf874H8H4O8A" +
	"/AEAgAPAdwD4DgAfAAAAAAAAAAAAAAAAAAAAAAAAAPgHAP8A4B8A/A+A/x3wvwP+d8D/DsDfAfgDAAAHgO8A8B0APgAAAAAA" +
	"AAAAAAAAAAAAAAAAAADwDwD+AcA/APgfAP874H8H/O+A/x2AvwPwBwAAPgDfB+D7AHwfAOwDgAEAAAAAAAAAAAAAAAAAAAAA" +
	"AAAAAACAPwDwdwD+DsDfAfj7AH8f4A8AAHwAvg/A9wH4PgDYBwADAAAAAAAAAAAAAAAAAAAAAAAAAAAAAH8A4O8A/B2AvwPw" +
	"9wH+PsAf"

var coherence [numAcidTypes][numAcidTypes][numAcidTypes]bool

func init() {
	raw, err := base64.StdEncoding.DecodeString(coherenceB64)
	if err != nil {
		panic("acid: corrupt coherence table: " + err.Error())
	}
	bit := 0
	for a := 0; a < numAcidTypes; a++ {
		for b := 0; b < numAcidTypes; b++ {
			for c := 0; c < numAcidTypes; c++ {
				byteIdx := bit / 8
				bitIdx := uint(bit % 8)
				coherence[a][b][c] = raw[byteIdx]&(1<<bitIdx) != 0
				bit++
			}
		}
	}
}

// IsCoherent reports whether the trivector (a,b,c) is a coherent sequence:
// false whenever any of a, b, c is STP, true/false otherwise per the fixed
// reference table.
func IsCoherent(a, b, c AcidType) bool {
	if a < 0 || int(a) >= numAcidTypes || b < 0 || int(b) >= numAcidTypes || c < 0 || int(c) >= numAcidTypes {
		return false
	}
	return coherence[a][b][c]
}
