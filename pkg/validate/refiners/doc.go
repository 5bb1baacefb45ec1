// Package refiners provides the built-in validation refiners MV01 to MV06.
package refiners
