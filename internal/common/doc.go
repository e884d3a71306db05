// Package common holds small generic helpers shared by the decoders.
package common
