package models

import "encoding/xml"

// ECBRateHistory is the root of the ECB eurofxref-hist XML document.
// Daily cubes are nested two levels deep under the envelope.
type ECBRateHistory struct {
	XMLName xml.Name     `xml:"Envelope"`
	Days    []ECBDayCube `xml:"Cube>Cube"`
}

// ECBDayCube holds all currency observations published for one date.
type ECBDayCube struct {
	Time  string        `xml:"time,attr"`
	Rates []ECBRateCube `xml:"Cube"`
}

// ECBRateCube is a single (currency, rate) observation.
type ECBRateCube struct {
	Currency string `xml:"currency,attr"`
	Rate     string `xml:"rate,attr"`
}
