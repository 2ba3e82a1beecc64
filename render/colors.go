package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbGridLine   = tcell.NewRGBColor(60, 62, 80)    // Cell boundaries
	RgbVerified   = tcell.NewRGBColor(30, 50, 40)    // Verified cell fill
	RgbFloor      = tcell.NewRGBColor(120, 110, 60)  // Backrooms yellow
	RgbPlayer     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbOther      = tcell.NewRGBColor(100, 150, 255) // Other players
	RgbGun        = tcell.NewRGBColor(200, 200, 200) // Floor gun
	RgbAmmo       = tcell.NewRGBColor(144, 238, 144) // Ammo crate
	RgbEnemyIdle  = tcell.NewRGBColor(180, 50, 50)   // Dark red
	RgbEnemyAngry = tcell.NewRGBColor(255, 80, 80)   // Charging or attacking
	RgbEnemyHit   = tcell.NewRGBColor(255, 255, 200) // Hit flash

	RgbStatusText   = tcell.NewRGBColor(0, 0, 0)       // Dark text on bars
	RgbStatusBar    = tcell.NewRGBColor(255, 255, 255) // White
	RgbWeaponBg     = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbFlashBg      = tcell.NewRGBColor(255, 255, 0)   // Muzzle flash
	RgbReloadBg     = tcell.NewRGBColor(255, 192, 203) // Pink
	RgbGateOpenBg   = tcell.NewRGBColor(144, 238, 144) // Grass green
	RgbGateArmingBg = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbGateClosedBg = tcell.NewRGBColor(200, 50, 50)   // Red
	RgbBanner       = tcell.NewRGBColor(255, 80, 80)   // Warning text
	RgbPrompt       = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbPopupBg      = tcell.NewRGBColor(40, 40, 60)    // Popup box
	RgbErrorText    = tcell.NewRGBColor(255, 0, 0)     // Error red
	RgbDebugText    = tcell.NewRGBColor(120, 120, 140) // Dim metrics
)

// Common styles
var (
	StyleDefault = tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusBar)
	StylePopup   = tcell.StyleDefault.Background(RgbPopupBg).Foreground(RgbStatusBar)
)
