package lifelog

// Version of the lifelog module.
const Version = "0.1.0"
