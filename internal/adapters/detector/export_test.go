// export_test.go exports private functions for white-box testing.
package detector

var Detect = detect
