package seed

// DemoContacts exposes demoContacts to the external test package.
var DemoContacts = demoContacts
