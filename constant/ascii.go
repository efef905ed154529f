package constant

// AsciiArtLogo is the application's banner shown in the root command help.
const AsciiArtLogo = `
  __ _ _ _ _  _ _ _  __| |_ _(_)______ ___
 / _' | '_| || | ' \/ _' | '_| (_-<_-</ -_)
 \__, |_|  \_,_|_||_\__,_|_| |_/__/__/\___|
 |___/`
