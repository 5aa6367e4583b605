package constants

// SVG sources for the special-key icons. Every %[1]s receives the icon colour
// as a #RRGGBB string before parsing.
const (
	IconBackspace = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="%[1]s" d="M22 3H7c-.69 0-1.23.35-1.59.88L0 12l5.41 8.11c.36.53.9.89 1.59.89h15c1.1 0 2-.9 2-2V5c0-1.1-.9-2-2-2zm-3 12.59L17.59 17 14 13.41 10.41 17 9 15.59 12.59 12 9 8.41 10.41 7 14 10.59 17.59 7 19 8.41 15.41 12 19 15.59z"/></svg>`

	IconShift = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="%[1]s" d="M12 3L2 13h6v8h8v-8h6z"/></svg>`

	IconShiftActive = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="%[1]s" d="M12 2L2 12h6v6h8v-6h6z"/><rect x="8" y="20" width="8" height="2" fill="%[1]s"/></svg>`

	IconSubmit = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="%[1]s" d="M19 7v4H5.83l3.58-3.59L8 6l-6 6 6 6 1.41-1.41L5.83 13H21V7z"/></svg>`
)
