// Package utils contains small date and timestamp helpers shared between the
// payload assembly and the daily record calculator.
package utils
