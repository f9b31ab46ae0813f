// Code generated by hand for tests. DO NOT EDIT.

package a

var slaveTable = 2
