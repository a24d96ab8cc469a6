package rendering

import "html/template"

type iconSet struct {
	Email    template.HTML
	Phone    template.HTML
	LinkedIn template.HTML
	Location template.HTML
	Calendar template.HTML
	Pin      template.HTML
}

var icons = iconSet{
	Email:    `<svg width="14" height="14" fill="none" viewBox="0 0 24 24"><path d="M4 8l8 5 8-5" stroke="#4B5EAA" stroke-width="1.5" fill="none"/><rect x="4" y="6" width="16" height="12" rx="2" stroke="#4B5EAA" stroke-width="1.5" fill="none"/></svg>`,
	Phone:    `<svg width="14" height="14" fill="none" viewBox="0 0 24 24"><path d="M6.62 10.79a15.053 15.053 0 006.59 6.59l2.2-2.2a1 1 0 011.11-.21c1.21.49 2.53.76 3.88.76a1 1 0 011 1V20a1 1 0 01-1 1C10.07 21 3 13.93 3 5a1 1 0 011-1h3.5a1 1 0 011 1c0 1.35.27 2.67.76 3.88a1 1 0 01-.21 1.11l-2.2 2.2z" stroke="#4B5EAA" stroke-width="1.5" fill="none"/></svg>`,
	LinkedIn: `<svg width="14" height="14" fill="none" viewBox="0 0 24 24"><rect width="24" height="24" rx="4" fill="#4B5EAA"/><path d="M8 11v5" stroke="#fff" stroke-width="1.5" stroke-linecap="round"/><circle cx="8" cy="8" r="1" fill="#fff"/><path d="M12 11v5" stroke="#fff" stroke-width="1.5" stroke-linecap="round"/><path d="M12 13c0-1.1.9-2 2-2s2 .9 2 2v3" stroke="#fff" stroke-width="1.5"/></svg>`,
	Location: `<svg width="14" height="14" fill="none" viewBox="0 0 24 24"><path d="M12 21s-6-5.686-6-10A6 6 0 0112 3a6 6 0 016 6c0 4.314-6 10-6 10z" stroke="#4B5EAA" stroke-width="1.5" fill="none"/><circle cx="12" cy="9" r="2.5" stroke="#4B5EAA" stroke-width="1.5" fill="none"/></svg>`,
	Calendar: `<svg width="13" height="13" fill="none" viewBox="0 0 24 24"><rect x="3" y="5" width="18" height="16" rx="2" stroke="#6B7280" stroke-width="1.5" fill="none"/><path d="M8 3v4M16 3v4" stroke="#6B7280" stroke-width="1.5"/><path d="M3 9h18" stroke="#6B7280" stroke-width="1.5"/></svg>`,
	Pin:      `<svg width="13" height="13" fill="none" viewBox="0 0 24 24"><path d="M12 21s-6-5.686-6-10A6 6 0 0112 3a6 6 0 016 6c0 4.314-6 10-6 10z" stroke="#6B7280" stroke-width="1.5" fill="none"/><circle cx="12" cy="9" r="2.5" stroke="#6B7280" stroke-width="1.5" fill="none"/></svg>`,
}

// achievementIcons rotate through the achievements list.
var achievementIcons = []template.HTML{
	`<svg width="16" height="16" fill="none" viewBox="0 0 24 24"><path d="M6 9H4.5a2.5 2.5 0 0 1 0-5H6M18 9h1.5a2.5 2.5 0 0 0 0-5H18M4 22h16M10 14.66V17c0 1.1.9 2 2 2s2-.9 2-2v-2.34M12 2v12.66" stroke="#00B894" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"/></svg>`,
	`<svg width="16" height="16" fill="none" viewBox="0 0 24 24"><circle cx="12" cy="12" r="10" stroke="#00B894" stroke-width="2"/><circle cx="12" cy="12" r="6" stroke="#00B894" stroke-width="2"/><circle cx="12" cy="12" r="2" fill="#00B894"/></svg>`,
	`<svg width="16" height="16" fill="none" viewBox="0 0 24 24"><path d="M13 2L3 14h9l-1 8 10-12h-9l1-8z" stroke="#00B894" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"/></svg>`,
	`<svg width="16" height="16" fill="none" viewBox="0 0 24 24"><path d="M12 2l3.09 6.26L22 9.27l-5 4.87 1.18 6.88L12 17.77l-6.18 3.25L7 14.14 2 9.27l6.91-1.01L12 2z" fill="#00B894"/></svg>`,
	`<svg width="16" height="16" fill="none" viewBox="0 0 24 24"><path d="M23 6l-9.5 9.5-5-5L1 18M17 6h6v6" stroke="#00B894" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"/></svg>`,
	`<svg width="16" height="16" fill="none" viewBox="0 0 24 24"><path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z" stroke="#00B894" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"/></svg>`,
}

// achievementBackgrounds rotate behind the achievement icons.
var achievementBackgrounds = []string{"#E8F5E8", "#E3F2FD", "#FFF3E0", "#F3E5F5", "#E0F2F1", "#FCE4EC"}

// AchievementBackground returns the icon background for the i-th achievement.
func AchievementBackground(i int) string {
	return achievementBackgrounds[i%len(achievementBackgrounds)]
}
