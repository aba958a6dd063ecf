// Package textutil provides small text helpers shared by the report writer.
package textutil
