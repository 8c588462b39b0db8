package db

// timestampLayout is the text form stored in DATETIME columns so SQLite's
// date functions can compare it.
const timestampLayout = "2006-01-02 15:04:05"
