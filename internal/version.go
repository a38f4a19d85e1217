package internal

// Version is the current arabify version
const Version = "0.1.0"
